package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// RuntimeConfig holds runtime-configurable settings for the client-side
// picker widget. In-memory only; values reset on process restart.
type RuntimeConfig struct {
	PickerAPIKey  string `json:"picker_api_key"`
	PickerEnabled bool   `json:"picker_enabled"`
}

var (
	runtimeConfig     RuntimeConfig
	runtimeConfigLock sync.RWMutex
)

// InitRuntimeConfig initializes runtime config from static config
func InitRuntimeConfig(pickerAPIKey string) {
	runtimeConfigLock.Lock()
	defer runtimeConfigLock.Unlock()
	runtimeConfig = RuntimeConfig{
		PickerAPIKey:  pickerAPIKey,
		PickerEnabled: pickerAPIKey != "",
	}
}

// UpdatePickerSettingsRequest represents the request body for updating picker settings
type UpdatePickerSettingsRequest struct {
	PickerAPIKey  string `json:"picker_api_key" binding:"required"`
	PickerEnabled *bool  `json:"picker_enabled"`
}

// GetPickerSettings returns the current picker configuration. The API key is
// a publishable browser key, so the endpoint is public.
// GET /api/settings/picker
func GetPickerSettings(c *gin.Context) {
	runtimeConfigLock.RLock()
	defer runtimeConfigLock.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"picker_api_key": runtimeConfig.PickerAPIKey,
		"picker_enabled": runtimeConfig.PickerEnabled,
	})
}

// UpdatePickerSettings updates picker configuration at runtime
// PUT /api/settings/picker
func UpdatePickerSettings(c *gin.Context) {
	var req UpdatePickerSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runtimeConfigLock.Lock()
	runtimeConfig.PickerAPIKey = req.PickerAPIKey
	if req.PickerEnabled != nil {
		runtimeConfig.PickerEnabled = *req.PickerEnabled
	} else {
		runtimeConfig.PickerEnabled = req.PickerAPIKey != ""
	}
	runtimeConfigLock.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"message":        "picker settings updated successfully",
		"picker_api_key": req.PickerAPIKey,
	})
}

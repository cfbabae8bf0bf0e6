package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	AppConfigDir(appName string) (string, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// AppConfigDir returns the configuration directory of one application.
func (service *platformService) AppConfigDir(appName string) (string, error) {
	if strings.TrimSpace(appName) == "" {
		return "", fmt.Errorf("app config dir: app name is empty")
	}
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("app config dir: %w", err)
	}
	return filepath.Join(configDir, dirName(appName)), nil
}

func dirName(appName string) string {
	name := strings.TrimSpace(appName)
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

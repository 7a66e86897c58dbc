package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ConfigRepository captures the persistence operations for the singleton
// application configuration.
type ConfigRepository interface {
	GetConfig(ctx context.Context) (AppConfig, error)
	SetConfig(ctx context.Context, config AppConfig) error
}

// defaultAppConfig is served when no configuration has ever been written.
var defaultAppConfig = AppConfig{AppName: "Parish Booker", AppLogo: "fa-church"}

// ConfigService reads and overwrites the application branding configuration.
type ConfigService struct {
	config ConfigRepository
	logger *slog.Logger
}

// NewConfigService constructs a config service with the provided dependencies.
func NewConfigService(config ConfigRepository) *ConfigService {
	return NewConfigServiceWithLogger(config, nil)
}

// NewConfigServiceWithLogger constructs a config service with a specified logger.
func NewConfigServiceWithLogger(config ConfigRepository, logger *slog.Logger) *ConfigService {
	return &ConfigService{config: config, logger: defaultLogger(logger)}
}

// Get returns the stored configuration, or the stock default when absent.
func (s *ConfigService) Get(ctx context.Context) (AppConfig, error) {
	if s == nil {
		return AppConfig{}, fmt.Errorf("ConfigService is nil")
	}
	if s.config == nil {
		return defaultAppConfig, nil
	}

	config, err := s.config.GetConfig(ctx)
	if err != nil {
		if isNotFound(err) {
			return defaultAppConfig, nil
		}
		return AppConfig{}, err
	}
	return config, nil
}

// Update overwrites the configuration wholesale for administrators.
func (s *ConfigService) Update(ctx context.Context, params UpdateConfigParams) (config AppConfig, err error) {
	if s == nil {
		err = fmt.Errorf("ConfigService is nil")
		return
	}
	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}
	if s.config == nil {
		err = fmt.Errorf("config repository not configured")
		return
	}

	logger := serviceLogger(ctx, s.logger, "ConfigService", "Update",
		"principal_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update config", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "config updated")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(params.Config.AppName) == "" {
		vErr.add("appName", "el nombre de la aplicación es requerido")
	}
	if strings.TrimSpace(params.Config.AppLogo) == "" {
		vErr.add("appLogo", "el logo es requerido")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	config = AppConfig{
		AppName: strings.TrimSpace(params.Config.AppName),
		AppLogo: strings.TrimSpace(params.Config.AppLogo),
	}
	if err = s.config.SetConfig(ctx, config); err != nil {
		config = AppConfig{}
		return
	}
	return
}

package storage

import "servicedesk/internal/shared/config"

func configWithDriver(driver string) config.StorageConfig {
	return config.StorageConfig{Driver: driver}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DatabaseConfig represents the relational database configuration
type DatabaseConfig struct {
	Type     string `yaml:"type"`     // postgres, mysql, sqlite
	Host     string `yaml:"host"`     // localhost
	Port     int    `yaml:"port"`     // 5432 (postgres), 3306 (mysql)
	User     string `yaml:"user"`     // database user
	Password string `yaml:"password"` // database password
	DBName   string `yaml:"dbname"`   // database name, or file path for sqlite
	SSLMode  string `yaml:"sslmode"`  // disable (postgres)
}

// GetDSN returns the database connection string for the configured backend.
func (c *DatabaseConfig) GetDSN() (string, error) {
	switch c.Type {
	case "postgres":
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, sslMode), nil
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.DBName), nil
	case "sqlite":
		if c.DBName != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(c.DBName), 0755); err != nil {
				return "", fmt.Errorf("failed to create directory for sqlite database: %w", err)
			}
		}
		return c.DBName, nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", c.Type)
	}
}

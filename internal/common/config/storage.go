package config

type (
	// StorageConfig represents the object storage configuration
	StorageConfig struct {
		Type string   `yaml:"type"` // s3, memory
		S3   S3Config `yaml:"s3"`
	}

	// S3Config represents an S3-compatible object storage backend.
	// Endpoint and UsePathStyle support non-AWS providers (MinIO etc.).
	S3Config struct {
		Region        string `yaml:"region"`
		Bucket        string `yaml:"bucket"`
		Endpoint      string `yaml:"endpoint"`
		AccessKey     string `yaml:"access_key"`
		SecretKey     string `yaml:"secret_key"`
		PublicBaseURL string `yaml:"public_base_url"`
		UsePathStyle  bool   `yaml:"use_path_style"`
	}
)

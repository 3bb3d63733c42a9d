package config

import (
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Port           string
	DatasetPath    string // Interchange document read by the dashboard
	RegisterPath   string // Register extract sheet (two-row header)
	PracticesPath  string // Practice directory sheet (id/name/postcode)
	PostcodeDBPath string // Sqlite postcode lookup store
	JWTSecret      string
	PageSize       int
	ListSizeKey    string // Canonical key of the practice list-size column
	SubsetSizeKey  string // Canonical key of the over-50 population column
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	datasetPath := os.Getenv("DATASET_PATH")
	if datasetPath == "" {
		datasetPath = "./data/dataset.json"
	}

	registerPath := os.Getenv("REGISTER_PATH")
	if registerPath == "" {
		registerPath = "./data/register_extract.csv"
	}

	practicesPath := os.Getenv("PRACTICES_PATH")
	if practicesPath == "" {
		practicesPath = "./data/practices.csv"
	}

	postcodeDBPath := os.Getenv("POSTCODE_DB_PATH")
	if postcodeDBPath == "" {
		postcodeDBPath = "./data/postcodes.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	pageSize := 10
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		}
	}

	listSizeKey := os.Getenv("LIST_SIZE_KEY")
	if listSizeKey == "" {
		listSizeKey = "List Size"
	}

	subsetSizeKey := os.Getenv("SUBSET_SIZE_KEY")
	if subsetSizeKey == "" {
		subsetSizeKey = "List Size 50+"
	}

	return &Config{
		Port:           port,
		DatasetPath:    datasetPath,
		RegisterPath:   registerPath,
		PracticesPath:  practicesPath,
		PostcodeDBPath: postcodeDBPath,
		JWTSecret:      jwtSecret,
		PageSize:       pageSize,
		ListSizeKey:    listSizeKey,
		SubsetSizeKey:  subsetSizeKey,
	}
}

package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	API    APIConfig
	Editor EditorConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	StateDir    string
}

type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type EditorConfig struct {
	// AutosaveDebounceMs is how long the editor waits after the last
	// keystroke before persisting an existing note.
	AutosaveDebounceMs int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", defaultStatePath("client.log")),
			StateDir:    getEnv("STATE_DIR", defaultStatePath("")),
		},
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),
			TimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 30),
		},
		Editor: EditorConfig{
			AutosaveDebounceMs: getEnvAsInt("AUTOSAVE_DEBOUNCE_MS", 1500),
		},
	}
}

func defaultStatePath(file string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".entity-journal")
	if file == "" {
		return dir
	}
	return filepath.Join(dir, file)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	MYSQL_DSN            = ""               // MySQL will be used if this is set
	SQLITE_FILE          = "forunime.db"    // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS         = "0.0.0.0:8080"
	TLS_DOMAINS          = "" // e.g. "example.com,example2.com"
	DEBUG_MODE           = true
	TOKEN_SECRET         = "change me in production"
	TOKEN_EXPIRY_MINUTES = 7 * 24 * 60
	UPLOAD_DIR           = "uploads" // Local photo storage, used if S3_BUCKET is not configured
	S3_BUCKET            = ""        // S3-compatible photo storage will be used if this is set
	S3_REGION            = "us-east-1"
	S3_ENDPOINT          = "" // Leave empty for AWS, set for S3-compatible servers (minio, etc)
	PUBLIC_URL           = "http://localhost:8080"
)

func init() {
	_ = godotenv.Load()

	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("TOKEN_SECRET", &TOKEN_SECRET)
	readEnvInt("TOKEN_EXPIRY_MINUTES", &TOKEN_EXPIRY_MINUTES)
	readEnvString("UPLOAD_DIR", &UPLOAD_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("PUBLIC_URL", &PUBLIC_URL)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}

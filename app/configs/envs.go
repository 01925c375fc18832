package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	Port       string

	RedisAddr     string
	RedisPassword string
	RedisDB       string

	JWTSecret string
	AppAuthKey string
	AppEncKey  string

	MIDTRANS_CLIENT_KEY string
	MIDTRANS_SERVER_KEY string

	UPI_VPA   string
	UPI_PAYEE string

	UploadDir string
	APP_URL   string
	APP_ENV   string

	CORS_ORIGIN string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		Port:       os.Getenv("APP_PORT"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       os.Getenv("REDIS_DB"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		AppAuthKey: os.Getenv("APP_AUTH_KEY"),
		AppEncKey:  os.Getenv("APP_ENC_KEY"),

		MIDTRANS_CLIENT_KEY: os.Getenv("MIDTRANS_CLIENT_KEY"),
		MIDTRANS_SERVER_KEY: os.Getenv("MIDTRANS_SERVER_KEY"),

		UPI_VPA:   os.Getenv("UPI_VPA"),
		UPI_PAYEE: os.Getenv("UPI_PAYEE"),

		UploadDir: os.Getenv("UPLOAD_DIR"),
		APP_URL:   os.Getenv("APP_URL"),
		APP_ENV:   os.Getenv("APP_ENV"),

		CORS_ORIGIN: os.Getenv("CORS_ORIGIN"),
	}

}

var LoadENV = LoadEnv()

package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "trailhead"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0
	DefaultCacheTTL  = 5 * time.Minute

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 20
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 2 * 1024 * 1024 // 2MB; destination documents are large

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultGenerateRequestTimeout = 60 * time.Second

	DefaultMediaDir     = "./uploads"
	DefaultMediaBaseURL = "/media"
	DefaultMaxUploadMB  = 10

	DefaultPaginationLimit = 100
)

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/seemaakh/bitefinder/internal/repository"
	mysqlRepo "github.com/seemaakh/bitefinder/internal/repository/mysql"
	myRedisCache "github.com/seemaakh/bitefinder/internal/repository/redis"
	"github.com/seemaakh/bitefinder/internal/workers"

	"github.com/seemaakh/bitefinder/internal/rest"
	"github.com/seemaakh/bitefinder/internal/rest/middleware"
	"github.com/seemaakh/bitefinder/internal/usecase/batch"
	"github.com/seemaakh/bitefinder/internal/usecase/category"
	"github.com/seemaakh/bitefinder/internal/usecase/comment"
	"github.com/seemaakh/bitefinder/internal/usecase/item"
	"github.com/seemaakh/bitefinder/internal/usecase/student"
)

const (
	defaultTimeout       = 30
	defaultAddress       = ":9090"
	defaultCacheDB       = 0
	defaultBloomBitSize  = 10000000
	defaultUploadDir     = "./uploads"
	defaultSweepInterval = 10 * time.Minute
	dbMaxRetry           = 10
	dbRetryIntervalSec   = 2
	rateLimitPerSecond   = 20
	rateLimitBurst       = 40
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "Asia/Kathmandu")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := range dbMaxRetry {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	route.Use(middleware.RateLimit(rate.Limit(rateLimitPerSecond), rateLimitBurst))
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// Prepare Repository
	commentRepo := mysqlRepo.NewCommentRepository(db)
	itemRepo := mysqlRepo.NewItemRepository(db)
	categoryRepo := mysqlRepo.NewCategoryRepository(db)
	batchRepo := mysqlRepo.NewBatchRepository(db)

	// Student相关的三层架构
	// 1. DB层
	studentDBRepo := mysqlRepo.NewStudentRepository(db)
	// 2. Cache层
	studentCache := myRedisCache.NewStudentCache(client)
	// 3. Repository协调层
	studentRepo := repository.NewStudentRepository(studentDBRepo, studentCache)

	bloomBitSizeStr := os.Getenv("BLOOM_FILTER_SIZE")
	bloomBitSize, err := strconv.ParseUint(bloomBitSizeStr, 10, 64)
	if err != nil {
		log.Printf("failed to parse bloom bit size, using default size")
		bloomBitSize = defaultBloomBitSize
	}
	bloomRepo := myRedisCache.NewRedisBloomRepo(client, bloomBitSize)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orphan_sweeper := workers.NewOrphanSweeper(commentRepo, defaultSweepInterval)
	go orphan_sweeper.Start(ctx)

	// Build service Layer
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	jwtTTLStr := os.Getenv("JWT_EXPIRE_HOURS")
	jwtTTL, err := strconv.Atoi(jwtTTLStr)
	if err != nil {
		log.Println("failed to parse JWT TTL, using default 24 hours")
		jwtTTL = 24
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = defaultUploadDir
	}

	studentSvc := student.NewService(studentRepo, jwtSecret, time.Duration(jwtTTL)*time.Hour)
	itemSvc := item.NewService(itemRepo, categoryRepo, commentRepo, bloomRepo)
	commentSvc := comment.NewService(commentRepo, studentRepo, itemRepo, bloomRepo)
	categorySvc := category.NewService(categoryRepo)
	batchSvc := batch.NewService(batchRepo)

	studentHandler := rest.NewStudentHandler(studentSvc)
	itemHandler := rest.NewItemHandler(itemSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)
	categoryHandler := rest.NewCategoryHandler(categorySvc)
	batchHandler := rest.NewBatchHandler(batchSvc)
	uploadHandler := rest.NewUploadHandler(uploadDir)

	authMiddleware := middleware.AuthMiddleware(string(jwtSecret))

	// Prepare bloom filter
	if err := itemSvc.InitBloomFilter(ctx); err != nil {
		log.Printf("failed to init bloom filter: %v\n", err)
		return
	}

	// Register routes
	route.Static("/uploads", uploadDir)

	v1 := route.Group("/api/v1")

	v1.POST("/students", studentHandler.Register)
	v1.POST("/students/login", studentHandler.Login)
	v1.GET("/students", studentHandler.Fetch)
	v1.GET("/students/:id", studentHandler.GetByID)

	v1.GET("/items", itemHandler.Fetch)
	v1.GET("/items/:id", itemHandler.GetByID)

	v1.GET("/comments/item/:itemId", commentHandler.FetchByItem)
	v1.GET("/comments/:commentId/replies", commentHandler.FetchReplies)
	v1.GET("/comments/student/:studentId", commentHandler.FetchByStudent)
	v1.GET("/comments/mentions/:studentId", commentHandler.FetchMentions)

	v1.GET("/categories", categoryHandler.Fetch)
	v1.GET("/categories/:id", categoryHandler.GetByID)
	v1.GET("/batches", batchHandler.Fetch)
	v1.GET("/batches/:id", batchHandler.GetByID)

	authorized := v1.Group("/")
	authorized.Use(authMiddleware)
	{
		authorized.PUT("/students/:id", studentHandler.Update)
		authorized.DELETE("/students/:id", studentHandler.Delete)

		authorized.POST("/items", itemHandler.Create)
		authorized.PUT("/items/:id", itemHandler.Update)
		authorized.DELETE("/items/:id", itemHandler.Delete)
		authorized.POST("/items/:id/claim", itemHandler.Claim)

		authorized.POST("/comments", commentHandler.CreateComment)
		authorized.PUT("/comments/:id", commentHandler.UpdateComment)
		authorized.DELETE("/comments/:id", commentHandler.DeleteComment)
		authorized.POST("/comments/:id/like", commentHandler.ToggleLike)

		authorized.POST("/categories", categoryHandler.Create)
		authorized.PUT("/categories/:id", categoryHandler.Update)
		authorized.DELETE("/categories/:id", categoryHandler.Delete)

		authorized.POST("/batches", batchHandler.Create)
		authorized.PUT("/batches/:id", batchHandler.Update)
		authorized.DELETE("/batches/:id", batchHandler.Delete)

		authorized.POST("/upload", uploadHandler.Upload)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/lib/pq"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB                *sql.DB
	Gorm              *gorm.DB
	RedisURL          string
	PostgresContainer testcontainers.Container
	RedisContainer    testcontainers.Container
	Logger            *zap.Logger
	ctx               context.Context
}

var testEnv *TestEnv

// SetupTestEnvironment initializes the test environment with containers
func SetupTestEnvironment(t *testing.T) *TestEnv {
	if testEnv != nil {
		return testEnv
	}

	ctx := context.Background()

	// Check if using external services (CI environment)
	if os.Getenv("DATABASE_URL") != "" {
		return setupExternalServices(t, ctx)
	}

	// Use testcontainers for local testing
	return setupContainers(t, ctx)
}

func setupExternalServices(t *testing.T, ctx context.Context) *TestEnv {
	logger, _ := zap.NewDevelopment()

	dsn := os.Getenv("DATABASE_URL")
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	gormDB, err := openGorm(dsn)
	if err != nil {
		t.Fatalf("Failed to open gorm connection: %v", err)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	testEnv = &TestEnv{
		DB:       db,
		Gorm:     gormDB,
		RedisURL: redisURL,
		Logger:   logger,
		ctx:      ctx,
	}

	return testEnv
}

func setupContainers(t *testing.T, ctx context.Context) *TestEnv {
	logger, _ := zap.NewDevelopment()

	// Start Postgres container
	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("retailmind_test"),
		postgres.WithUsername("retailmind"),
		postgres.WithPassword("retailmind_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	pgHost, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get postgres host: %v", err)
	}
	pgPort, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get postgres port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://retailmind:retailmind_test@%s:%s/retailmind_test?sslmode=disable", pgHost, pgPort.Port())

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	// Wait for connection
	for i := 0; i < 30; i++ {
		if err := db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}

	gormDB, err := openGorm(dsn)
	if err != nil {
		t.Fatalf("Failed to open gorm connection: %v", err)
	}

	// Start Redis container
	redisContainer, err := tcredis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}

	redisHost, err := redisContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get redis host: %v", err)
	}
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get redis port: %v", err)
	}

	testEnv = &TestEnv{
		DB:                db,
		Gorm:              gormDB,
		RedisURL:          fmt.Sprintf("redis://%s:%s", redisHost, redisPort.Port()),
		PostgresContainer: postgresContainer,
		RedisContainer:    redisContainer,
		Logger:            logger,
		ctx:               ctx,
	}

	return testEnv
}

func openGorm(dsn string) (*gorm.DB, error) {
	return gorm.Open(gormpg.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// TeardownTestEnvironment cleans up the test environment
func TeardownTestEnvironment(t *testing.T) {
	if testEnv == nil {
		return
	}

	ctx := context.Background()

	if testEnv.DB != nil {
		testEnv.DB.Close()
	}

	if testEnv.PostgresContainer != nil {
		if err := testEnv.PostgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	}

	if testEnv.RedisContainer != nil {
		if err := testEnv.RedisContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	}

	testEnv = nil
}

// CleanDatabase truncates all tables
func CleanDatabase(t *testing.T, db *sql.DB) {
	tables := []string{
		"voice_logs",
		"employee_task_logs",
		"supplier_purchase_orders",
		"retail_sales_transactions",
		"clothing_retail_inventory",
		"suppliers",
	}

	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			// Table might not exist, that's ok
			t.Logf("Failed to truncate %s: %v", table, err)
		}
	}
}

// SetupSchema creates the database schema for testing
func SetupSchema(t *testing.T, db *sql.DB) {
	schema := `
	CREATE TABLE IF NOT EXISTS suppliers (
		supplier_id VARCHAR(36) PRIMARY KEY,
		supplier_name VARCHAR(255) NOT NULL,
		contact_name VARCHAR(255),
		contact_email VARCHAR(255),
		phone_number VARCHAR(50),
		city VARCHAR(100),
		state VARCHAR(100),
		lead_time_days INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS clothing_retail_inventory (
		product_id VARCHAR(36) PRIMARY KEY,
		sku VARCHAR(100),
		name VARCHAR(255) NOT NULL,
		category VARCHAR(100),
		color VARCHAR(50),
		size VARCHAR(10),
		stock_quantity INTEGER DEFAULT 0,
		reorder_threshold INTEGER DEFAULT 0,
		location VARCHAR(100),
		selling_price DECIMAL(10, 2),
		supplier_id VARCHAR(36)
	);

	CREATE TABLE IF NOT EXISTS retail_sales_transactions (
		id VARCHAR(36) PRIMARY KEY,
		product_id VARCHAR(36),
		sale_date TIMESTAMP NOT NULL,
		quantity_sold INTEGER DEFAULT 0,
		revenue DECIMAL(15, 2) DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS supplier_purchase_orders (
		purchase_order_id VARCHAR(36) PRIMARY KEY,
		supplier_id VARCHAR(36),
		supplier_name VARCHAR(255),
		status VARCHAR(50) DEFAULT 'Pending',
		order_date TIMESTAMP,
		delivery_date TIMESTAMP,
		total_cost DECIMAL(15, 2),
		payment_status VARCHAR(50)
	);

	CREATE TABLE IF NOT EXISTS employee_task_logs (
		task_id VARCHAR(36) PRIMARY KEY,
		employee_name VARCHAR(255),
		employee_role VARCHAR(100),
		task_type VARCHAR(100),
		assigned_date TIMESTAMP,
		due_date TIMESTAMP,
		status VARCHAR(50),
		related_product VARCHAR(255),
		quantity INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS voice_logs (
		id VARCHAR(36) PRIMARY KEY,
		session_id VARCHAR(100),
		transcript TEXT NOT NULL,
		intent VARCHAR(50),
		entities JSONB,
		result JSONB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_inventory_sku ON clothing_retail_inventory(sku);
	CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON retail_sales_transactions(sale_date);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON supplier_purchase_orders(status);
	CREATE INDEX IF NOT EXISTS idx_voice_logs_session ON voice_logs(session_id);
	`

	_, err := db.Exec(schema)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
}

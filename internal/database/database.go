package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// --- ScyllaDB configuration ---
type ScyllaKeyspaceConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	Timeout     time.Duration
	NumConns    int
	Consistency gocql.Consistency
}

type ScyllaManager struct {
	sessions map[string]*gocql.Session // keyspace → session
	configs  map[string]ScyllaKeyspaceConfig
	mu       sync.Mutex
}

// --- Global clients ---
var (
	Scylla  *ScyllaManager
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
)

// ConnectDatabases wires every backing store; fatal if any required one is down.
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := InitScyllaDB(); err != nil {
		log.Fatalf("❌ ScyllaDB initialization failed: %v", err)
	}

	connectRedis(ctx)
	connectElastic()
	connectMinIO(ctx)

	log.Println("✅ All databases connected")
}

// =============================================
// SCYLLA DB (multi-keyspace with per-role auth)
// =============================================

func InitScyllaDB() error {
	Scylla = &ScyllaManager{
		sessions: make(map[string]*gocql.Session),
		configs:  loadScyllaConfigs(),
	}

	for keyspace := range Scylla.configs {
		if _, err := Scylla.GetSession(keyspace); err != nil {
			return fmt.Errorf("keyspace %s initialization failed: %v", keyspace, err)
		}
	}

	// Tables are created via scripts/scylladb_init.cql, not at startup,
	// so application roles only need read/write permissions.

	return nil
}

func loadScyllaConfigs() map[string]ScyllaKeyspaceConfig {
	configs := make(map[string]ScyllaKeyspaceConfig)

	hosts := strings.Split(os.Getenv("SCYLLA_HOSTS"), ",")
	timeout := 5 * time.Second
	numConns := 20
	consistency := gocql.Quorum

	// --- Users keyspace (accounts, practitioner profiles) ---
	if ks := os.Getenv("SCYLLA_KS_USERS_KEYSPACE"); ks != "" {
		configs[ks] = ScyllaKeyspaceConfig{
			Hosts:       hosts,
			Keyspace:    ks,
			Username:    os.Getenv("SCYLLA_KS_USERS_ROLE"),
			Password:    os.Getenv("SCYLLA_KS_USERS_PASSWORD"),
			Timeout:     timeout,
			NumConns:    numConns,
			Consistency: consistency,
		}
	}

	// --- Catalog keyspace (products, stock movements) ---
	if ks := os.Getenv("SCYLLA_KS_CATALOG_KEYSPACE"); ks != "" {
		configs[ks] = ScyllaKeyspaceConfig{
			Hosts:       hosts,
			Keyspace:    ks,
			Username:    os.Getenv("SCYLLA_KS_CATALOG_ROLE"),
			Password:    os.Getenv("SCYLLA_KS_CATALOG_PASSWORD"),
			Timeout:     timeout,
			NumConns:    numConns,
			Consistency: consistency,
		}
	}

	// --- Bookings keyspace (orders, therapy sessions, reviews, notifications) ---
	if ks := os.Getenv("SCYLLA_KS_BOOKINGS_KEYSPACE"); ks != "" {
		configs[ks] = ScyllaKeyspaceConfig{
			Hosts:       hosts,
			Keyspace:    ks,
			Username:    os.Getenv("SCYLLA_KS_BOOKINGS_ROLE"),
			Password:    os.Getenv("SCYLLA_KS_BOOKINGS_PASSWORD"),
			Timeout:     timeout,
			NumConns:    numConns,
			Consistency: consistency,
		}
	}

	return configs
}

func createScyllaCluster(config ScyllaKeyspaceConfig) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(config.Hosts...)
	cluster.Keyspace = config.Keyspace
	cluster.Consistency = config.Consistency
	cluster.Timeout = config.Timeout
	cluster.NumConns = config.NumConns

	cluster.MaxWaitSchemaAgreement = 30 * time.Second
	cluster.ReconnectInterval = 1 * time.Second
	cluster.Authenticator = gocql.PasswordAuthenticator{
		Username: config.Username,
		Password: config.Password,
	}

	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	return cluster
}

// GetSession returns a live session for the keyspace, recreating it when stale.
func (sm *ScyllaManager) GetSession(keyspace string) (*gocql.Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	config, exists := sm.configs[keyspace]
	if !exists {
		return nil, fmt.Errorf("keyspace '%s' is not configured", keyspace)
	}

	if session, exists := sm.sessions[keyspace]; exists {
		if err := session.Query("SELECT now() FROM system.local").Exec(); err == nil {
			return session, nil
		}
		session.Close()
	}

	session, err := createScyllaCluster(config).CreateSession()
	if err != nil {
		return nil, fmt.Errorf("session creation failed for %s: %v", keyspace, err)
	}

	sm.sessions[keyspace] = session
	log.Printf("✅ New ScyllaDB session for keyspace '%s' (role: %s)", keyspace, config.Username)

	return session, nil
}

// CloseScylla closes every open ScyllaDB session.
func CloseScylla() {
	Scylla.mu.Lock()
	defer Scylla.mu.Unlock()

	for keyspace, session := range Scylla.sessions {
		session.Close()
		log.Printf("🔌 ScyllaDB session closed for keyspace '%s'", keyspace)
	}
}

// =============================================
// KEYSPACE SESSION HELPERS
// =============================================

// GetUsersSession returns the session for the users keyspace.
func GetUsersSession() (*gocql.Session, error) {
	keyspace := os.Getenv("SCYLLA_KS_USERS_KEYSPACE")
	if keyspace == "" {
		return nil, fmt.Errorf("SCYLLA_KS_USERS_KEYSPACE is not set")
	}
	return Scylla.GetSession(keyspace)
}

// GetCatalogSession returns the session for the catalog keyspace.
func GetCatalogSession() (*gocql.Session, error) {
	keyspace := os.Getenv("SCYLLA_KS_CATALOG_KEYSPACE")
	if keyspace == "" {
		return nil, fmt.Errorf("SCYLLA_KS_CATALOG_KEYSPACE is not set")
	}
	return Scylla.GetSession(keyspace)
}

// GetBookingsSession returns the session for the bookings keyspace.
func GetBookingsSession() (*gocql.Session, error) {
	keyspace := os.Getenv("SCYLLA_KS_BOOKINGS_KEYSPACE")
	if keyspace == "" {
		return nil, fmt.Errorf("SCYLLA_KS_BOOKINGS_KEYSPACE is not set")
	}
	return Scylla.GetSession(keyspace)
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST"),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Redis connection failed:", err)
	}
	log.Println("✅ Connected to Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic() {
	cfg := elasticsearch.Config{
		Addresses: []string{os.Getenv("ELASTIC_URL")},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Fatal("❌ Elasticsearch client creation failed:", err)
	}

	res, err := client.Info()
	if err != nil {
		log.Fatal("❌ Elasticsearch connection failed:", err)
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connected to Elasticsearch")
}

// =============================================
// MINIO (practitioner verification documents)
// =============================================
func connectMinIO(ctx context.Context) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Fatal("❌ MinIO connection failed:", err)
	}

	bucketName := os.Getenv("MINIO_BUCKET")
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Fatal("❌ MinIO bucket check failed:", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("❌ MinIO bucket creation failed:", err)
		}
		log.Println("🪣 Bucket created:", bucketName)
	} else {
		log.Println("🪣 MinIO bucket already present:", bucketName)
	}

	MinIO = client
	log.Println("✅ Connected to MinIO:", endpoint)
}

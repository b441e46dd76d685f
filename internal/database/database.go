package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// --- Variables Globales ---
var (
	Mongo   *mongo.Client
	MongoDB *mongo.Database
	Redis   *redis.Client
	Elastic *elasticsearch.Client
)

// --- Initialisation ---
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. MongoDB (users, products, orders)
	connectMongo(ctx)

	// 2. Redis (paniers, wishlist, sessions checkout, rate limit)
	connectRedis(ctx)

	// 3. Elasticsearch (indexation produits)
	connectElastic()

	log.Println("✅ Toutes les bases de données sont connectées")
}

func connectMongo(ctx context.Context) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "velora"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("❌ Échec connexion MongoDB: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("❌ MongoDB injoignable: %v", err)
	}

	Mongo = client
	MongoDB = client.Database(dbName)
	log.Printf("✅ MongoDB connecté (base %s)", dbName)
}

func connectRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Échec connexion Redis: %v", err)
	}
	log.Println("✅ Redis connecté")
}

func connectElastic() {
	addr := os.Getenv("ELASTIC_URL")
	if addr == "" {
		log.Println("⚠️ ELASTIC_URL absent — indexation produits désactivée")
		return
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
		Username:  os.Getenv("ELASTIC_USERNAME"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	})
	if err != nil {
		log.Printf("⚠️ Échec initialisation Elasticsearch: %v", err)
		return
	}

	Elastic = client
	log.Println("✅ Elasticsearch connecté")
}

// Collections Mongo utilisées par l'application
func Users() *mongo.Collection      { return MongoDB.Collection("users") }
func Products() *mongo.Collection   { return MongoDB.Collection("products") }
func Orders() *mongo.Collection     { return MongoDB.Collection("orders") }
func Newsletter() *mongo.Collection { return MongoDB.Collection("newsletter_subscribers") }

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mbeoliero/kit/log"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mbeoliero/realty/internal/config"
	"github.com/mbeoliero/realty/internal/entity"
)

// Repositories holds all repositories
type Repositories struct {
	Mongo   *mongo.Client
	MongoDB *mongo.Database
	DB      *gorm.DB
	Redis   *redis.Client

	User             *UserRepo
	PushSubscription *PushSubscriptionRepo
	Conversation     *ConversationRepo
	Message          *MessageRepo
	Agency           *AgencyRepo
	Customer         *CustomerRepo
	Property         *PropertyRepo
	Meeting          *MeetingRepo
	Share            *ShareRepo
	Notification     *NotificationRepo
}

// NewRepositories creates all repositories
func NewRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	client, err := initMongo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db, err := initDB(cfg)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	repos := &Repositories{
		Mongo: client,
		DB:    db,
		Redis: initRedis(cfg),
	}
	repos.wire(client.Database(cfg.Mongo.Database))
	return repos, nil
}

// NewMongoRepositories wires the document repositories on an existing database
func NewMongoRepositories(mdb *mongo.Database) *Repositories {
	repos := &Repositories{Mongo: mdb.Client()}
	repos.wire(mdb)
	return repos
}

func (r *Repositories) wire(mdb *mongo.Database) {
	r.MongoDB = mdb
	r.Conversation = NewConversationRepo(mdb)
	r.Message = NewMessageRepo(mdb)
	r.Agency = NewAgencyRepo(mdb)
	r.Customer = NewCustomerRepo(mdb)
	r.Property = NewPropertyRepo(mdb)
	r.Meeting = NewMeetingRepo(mdb)
	r.Share = NewShareRepo(mdb)
	r.Notification = NewNotificationRepo(mdb)
	if r.DB != nil {
		r.User = NewUserRepo(r.DB)
		r.PushSubscription = NewPushSubscriptionRepo(r.DB)
	}
}

// initMongo connects to MongoDB
func initMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerSelectionTimeout(cfg.Mongo.Timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return client, nil
}

// initDB initializes the relational connection for the configured driver
func initDB(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	} else {
		logLevel = logger.Warn
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN())
	default:
		dialector = mysql.Open(cfg.Database.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// initRedis initializes Redis connection
func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// Migrate creates tables and indexes and backfills conversation pair keys
func (r *Repositories) Migrate(ctx context.Context) error {
	if r.DB != nil {
		if err := r.DB.WithContext(ctx).AutoMigrate(&entity.User{}, &entity.PushSubscription{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}

	n, err := r.Conversation.BackfillPairKeys(ctx)
	if err != nil {
		return fmt.Errorf("backfill pair keys: %w", err)
	}
	if n > 0 {
		log.CtxInfo(ctx, "backfilled conversation pair keys: count=%d", n)
	}

	return r.EnsureIndexes(ctx)
}

// EnsureIndexes creates the document store indexes
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	indexers := map[string]interface{ ensureIndexes(context.Context) error }{
		"conversations":  r.Conversation,
		"messages":       r.Message,
		"agencies":       r.Agency,
		"customers":      r.Customer,
		"properties":     r.Property,
		"meetings":       r.Meeting,
		"propertyshares": r.Share,
		"notifications":  r.Notification,
	}
	for name, ix := range indexers {
		if err := ix.ensureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Close closes all connections
func (r *Repositories) Close(ctx context.Context) error {
	if r.DB != nil {
		sqlDB, err := r.DB.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Close(); err != nil {
			return err
		}
	}
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			return err
		}
	}
	return r.Mongo.Disconnect(ctx)
}

// CheckConnection checks if mongo, the relational database and redis are alive
func (r *Repositories) CheckConnection(ctx context.Context) error {
	if err := r.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		log.CtxError(ctx, "mongo ping failed: %v", err)
		return err
	}

	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		log.CtxError(ctx, "database ping failed: %v", err)
		return err
	}

	if err := r.Redis.Ping(ctx).Err(); err != nil {
		log.CtxError(ctx, "redis ping failed: %v", err)
		return err
	}

	return nil
}

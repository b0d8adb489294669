package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abdelrazek97/form-app/config"
	"github.com/Abdelrazek97/form-app/model"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GORMStore owns the records database and the separate question bank database
type GORMStore struct {
	db        *gorm.DB
	questions *gorm.DB
	log       *zap.Logger
}

// StartGORM opens both databases with the driver selected by DB_DRIVER
func StartGORM(env *config.EnvironmentVariable, log *zap.Logger) (*GORMStore, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if env.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	var (
		db, questions *gorm.DB
		err           error
	)
	switch env.DB_DRIVER {
	case "postgres":
		db, err = OpenPostgres(postgresDSN(env, env.DB_NAME), gormLogger)
		if err == nil {
			questions, err = OpenPostgres(postgresDSN(env, env.QUESTION_DB_NAME), gormLogger)
		}
	default:
		db, err = OpenSQLite(sqliteDSN(env.DB_PATH), gormLogger)
		if err == nil {
			questions, err = OpenSQLite(sqliteDSN(env.QUESTION_DB_PATH), gormLogger)
		}
	}
	if err != nil {
		log.Error("unable to open database", zap.String("driver", env.DB_DRIVER), zap.Error(err))
		return nil, err
	}

	log.Info("connected to databases", zap.String("driver", env.DB_DRIVER))
	return NewGORMStore(db, questions, log), nil
}

// NewGORMStore wraps already opened connections
func NewGORMStore(db, questions *gorm.DB, log *zap.Logger) *GORMStore {
	return &GORMStore{db: db, questions: questions, log: log}
}

// OpenSQLite opens a local SQLite file (or in-memory URI) with a single
// writer connection
func OpenSQLite(dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		PrepareStmt:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Init runs AutoMigrate on both databases
func (s *GORMStore) Init() error {
	s.log.Info("running AutoMigrate for records database")
	if err := s.db.AutoMigrate(model.AllModels()...); err != nil {
		s.log.Error("records AutoMigrate failed", zap.Error(err))
		return err
	}

	s.log.Info("running AutoMigrate for question bank database")
	if err := s.questions.AutoMigrate(&model.Question{}); err != nil {
		s.log.Error("question bank AutoMigrate failed", zap.Error(err))
		return err
	}

	s.log.Info("AutoMigrate completed")
	return nil
}

// Close closes both database connections
func (s *GORMStore) Close() error {
	s.log.Info("closing database connections")
	var firstErr error
	for _, db := range []*gorm.DB{s.db, s.questions} {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// DB returns the records database
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

// QuestionDB returns the question bank database
func (s *GORMStore) QuestionDB() *gorm.DB {
	return s.questions
}

// HealthCheck pings both databases
func (s *GORMStore) HealthCheck() error {
	for name, db := range map[string]*gorm.DB{"records": s.db, "questions": s.questions} {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("%s database: %w", name, err)
		}
		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("%s database: %w", name, err)
		}
	}
	return nil
}

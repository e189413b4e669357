package db

import (
	"context"
	"errors"
	"time"

	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/domain/composer"
	"github.com/prasetyowira/qrlogo/domain/session"
	appLogger "github.com/prasetyowira/qrlogo/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// sessionRowID is the primary key of the single persisted form
const sessionRowID = 1

// SQLiteRepository keeps the form state in a single sqlite row
type SQLiteRepository struct {
	db *gorm.DB
}

// SessionModel is the GORM model for the persisted form state.
// Colors are stored as hex strings so the table stays readable.
type SessionModel struct {
	ID         uint   `gorm:"primaryKey"`
	Text       string `gorm:"not null"`
	Size       string `gorm:"not null"`
	Border     string `gorm:"not null"`
	Fill       string `gorm:"not null"`
	Background string `gorm:"not null"`
	LogoPath   string
	UpdatedAt  time.Time
}

// slowQuery marks statements worth a warning; a form row should never take this long
const slowQuery = 200 * time.Millisecond

// GormLogger forwards gorm's messages to the application logger at the level
// selected through LogMode
type GormLogger struct {
	level gormLogger.LogLevel
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return &GormLogger{level: level}
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormLogger.Info {
		appLogger.CtxInfo(ctx, msg, gormInfo(nil, data))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormLogger.Warn {
		appLogger.CtxWarn(ctx, msg, gormInfo(nil, data))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormLogger.Error {
		appLogger.CtxError(ctx, msg, gormInfo(&appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		}, data))
	}
}

// Trace reports every statement at debug level, failures as errors and slow
// statements as warnings
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	data := map[string]interface{}{
		constant.DataElapsed: elapsed.String(),
		constant.DataRows:    rows,
		constant.DataSQL:     sql,
	}

	switch {
	// a missing session row is the normal first run
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		appLogger.CtxError(ctx, "SQL statement failed", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: data,
		})
	case elapsed > slowQuery:
		appLogger.CtxWarn(ctx, "Slow SQL statement", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Data:            data,
		})
	default:
		appLogger.CtxDebug(ctx, "SQL statement", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Data:            data,
		})
	}
}

func gormInfo(e *appLogger.CustomError, data []interface{}) appLogger.LoggerInfo {
	return appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error:           e,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	}
}

// NewSQLiteRepository opens (or creates) the database file at dbPath and
// migrates the session table
func NewSQLiteRepository(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: &GormLogger{level: gormLogger.Warn},
	})
	if err != nil {
		appLogger.CtxError(ctx, "Cannot open session database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	if err := db.WithContext(ctx).AutoMigrate(&SessionModel{}); err != nil {
		appLogger.CtxError(ctx, "Session table migration failed", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Session database ready", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &SQLiteRepository{db: db}, nil
}

// Load returns the stored form state, or nil if none was stored yet.
// A row with unparseable colors falls back to the default colors.
func (r *SQLiteRepository) Load(ctx context.Context) (*session.State, error) {
	var model SessionModel

	err := r.db.WithContext(ctx).First(&model, sessionRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		appLogger.CtxDebug(ctx, constant.ErrSessionNotFound, appLogger.LoggerInfo{
			ContextFunction: constant.CtxLoad,
		})
		return nil, nil
	}
	if err != nil {
		appLogger.CtxError(ctx, "Failed to load session state", appLogger.LoggerInfo{
			ContextFunction: constant.CtxLoad,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	state := &session.State{
		Text:       model.Text,
		Size:       model.Size,
		Border:     model.Border,
		Fill:       parseStoredColor(ctx, model.Fill, composer.Black),
		Background: parseStoredColor(ctx, model.Background, composer.White),
		LogoPath:   model.LogoPath,
	}

	appLogger.CtxDebug(ctx, "Session state loaded", appLogger.LoggerInfo{
		ContextFunction: constant.CtxLoad,
		Data: map[string]interface{}{
			constant.DataTextLength: len(state.Text),
			constant.DataLogoPath:   state.LogoPath,
		},
	})

	return state, nil
}

// Store upserts the single session row
func (r *SQLiteRepository) Store(ctx context.Context, state *session.State) error {
	model := SessionModel{
		ID:         sessionRowID,
		Text:       state.Text,
		Size:       state.Size,
		Border:     state.Border,
		Fill:       state.Fill.Hex(),
		Background: state.Background.Hex(),
		LogoPath:   state.LogoPath,
	}

	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to store session state", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBUpsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return result.Error
	}

	appLogger.CtxDebug(ctx, "Session state stored", appLogger.LoggerInfo{
		ContextFunction: constant.CtxStore,
		Data: map[string]interface{}{
			constant.DataRowsAffected: result.RowsAffected,
		},
	})

	return nil
}

func parseStoredColor(ctx context.Context, hex string, fallback composer.Color) composer.Color {
	c, err := composer.ParseColor(hex)
	if err != nil {
		appLogger.CtxWarn(ctx, "Stored color is invalid, using default", appLogger.LoggerInfo{
			ContextFunction: constant.CtxLoad,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeInvalidColor,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return fallback
	}
	return c
}

// Close releases the underlying connection pool
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		appLogger.Error("Session database handle unavailable", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.Info("Closing session database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}

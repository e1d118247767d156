package ioc

import (
	"log"

	"github.com/glebarez/sqlite"
	"github.com/to404hanga/codestudio_arena/config"
	"github.com/to404hanga/codestudio_arena/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitDB() *gorm.DB {
	var cfg config.DBConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load db config failed: %v", err)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DBDriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		dialector = mysql.Open(cfg.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Panicf("open db failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Panicf("get sql db failed: %v", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.AutoMigrate {
		if err = db.AutoMigrate(&model.Draft{}, &model.Attempt{}); err != nil {
			log.Panicf("auto migrate failed: %v", err)
		}
	}
	return db
}

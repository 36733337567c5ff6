package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options 描述数据库连接方式。DSN 非空时使用 PostgreSQL，否则使用 SQLite 文件。
type Options struct {
	Path   string
	DSN    string
	Silent bool
}

// Open 初始化数据库连接并执行自动迁移。
// Path 为空时将回退到默认值 wellcampus.db。
func Open(opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if opts.Silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate 为槽位与管理员账号建表
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&Slot{}, &AdminAccount{})
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	dsn := strings.TrimSpace(opts.DSN)
	if dsn != "" {
		if !isPostgresDSN(dsn) {
			return nil, errors.New("unsupported database dsn")
		}
		return postgres.Open(dsn), nil
	}

	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = "wellcampus.db"
	}
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}
	return sqlite.Open(path), nil
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.HasPrefix(lower, "host=")
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}

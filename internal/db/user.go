package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 在管理员邮箱或密码不匹配时返回
var ErrInvalidCredentials = errors.New("invalid admin credentials")

// AdminAccount 定义了管理员账号模型，密码以 bcrypt 哈希保存
type AdminAccount struct {
	gorm.Model
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
}

// EnsureAdmin 存在性检查：若提供的邮箱与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的管理员。
func EnsureAdmin(gdb *gorm.DB, email, password string) error {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if gdb == nil {
		return errors.New("database not initialized")
	}

	var existing AdminAccount
	if err := gdb.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return gdb.Create(&AdminAccount{Email: trimmedEmail, Password: string(hashed)}).Error
	}

	return nil
}

// VerifyAdmin 校验管理员凭据。未配置任何管理员账号时直接放行。
func VerifyAdmin(gdb *gorm.DB, email, password string) error {
	var count int64
	if err := gdb.Model(&AdminAccount{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	var account AdminAccount
	if err := gdb.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

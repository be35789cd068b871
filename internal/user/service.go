package user

import (
	"errors"
	"fmt"

	"github.com/AscentLab/realm-ascent-backend/internal/platform/database"
	"github.com/AscentLab/realm-ascent-backend/pkg/auth"
	"gorm.io/gorm"
)

var (
	// ErrUsernameTaken 表示注册时用户名已被占用
	ErrUsernameTaken = errors.New("用户名已被占用")
	// ErrInvalidCredentials 表示用户名或密码不正确
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrUserNotFound 表示指定的用户不存在
	ErrUserNotFound = errors.New("用户不存在")
)

// RegisterUser 创建一个新账号。
// 用户名和密码的格式约束由请求边界校验，这里只负责唯一性和哈希。
func RegisterUser(username, password string) (*User, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	newUser := User{Username: username, PasswordHash: passwordHash}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		// SQLite驱动对唯一约束冲突未必映射为gorm.ErrDuplicatedKey，
		// 再按用户名查一次以区分冲突和其他错误
		var existing User
		if lookupErr := database.DB.Where("username = ?", username).First(&existing).Error; lookupErr == nil {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("无法创建用户: %w", err)
	}

	return &newUser, nil
}

// AuthenticateUser 校验用户名和密码，成功时返回对应的用户。
func AuthenticateUser(username, password string) (*User, error) {
	var u User
	err := database.DB.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 即使用户不存在也走一次哈希比较的失败路径，不泄露用户名是否注册过
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("无法查询用户: %w", err)
	}

	if err := auth.ComparePassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// GetUserByID 按ID查询用户。
func GetUserByID(id uint) (*User, error) {
	var u User
	err := database.DB.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("无法查询用户: %w", err)
	}
	return &u, nil
}

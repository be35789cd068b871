package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost 是bcrypt哈希的计算成本
const bcryptCost = 12

// HashPassword 使用bcrypt对明文密码进行哈希。
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("无法哈希密码: %w", err)
	}
	return string(hashedBytes), nil
}

// ComparePassword 校验明文密码与存储的哈希是否匹配。
// 匹配时返回nil。
func ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Package objectid 生成和校验MongoDB ObjectID的十六进制表示
// 领域层和接口层只接触字符串ID，不依赖bson类型
package objectid

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// New 生成新的ObjectID（24位十六进制）
func New() string {
	return bson.NewObjectID().Hex()
}

// IsValid 是否为合法的ObjectID
func IsValid(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}

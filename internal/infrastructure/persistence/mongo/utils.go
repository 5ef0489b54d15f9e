package mongo

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xiebiao/ebookstore/internal/domain/media"
)

// isDuplicateError 判断是否为唯一索引冲突（E11000）
func isDuplicateError(err error) bool {
	return err != nil && mongo.IsDuplicateKeyError(err)
}

// oid 十六进制ID → ObjectID
// 非法ID返回NilObjectID，查询时不会匹配任何文档
func oid(id string) bson.ObjectID {
	o, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID
	}
	return o
}

// oids 批量转换，忽略非法ID
func oids(ids []string) []bson.ObjectID {
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if o, err := bson.ObjectIDFromHex(id); err == nil {
			out = append(out, o)
		}
	}
	return out
}

// hexes ObjectID列表 → 十六进制字符串列表
func hexes(ids []bson.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

// newOrExisting 实体没有ID时生成新的ObjectID
func newOrExisting(id string) bson.ObjectID {
	if o, err := bson.ObjectIDFromHex(id); err == nil {
		return o
	}
	return bson.NewObjectID()
}

// assetModel 嵌入文档：对象存储中的文件
type assetModel struct {
	ID  string `bson:"id"`
	URL string `bson:"url"`
}

func toAssetModel(a *media.Asset) *assetModel {
	if a == nil {
		return nil
	}
	return &assetModel{ID: a.ID, URL: a.URL}
}

func (m *assetModel) toEntity() *media.Asset {
	if m == nil {
		return nil
	}
	return &media.Asset{ID: m.ID, URL: m.URL}
}

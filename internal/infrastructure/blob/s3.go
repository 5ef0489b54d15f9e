// Package blob 基于S3兼容对象存储实现media.Store（图书封面、用户头像）
package blob

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/xiebiao/ebookstore/internal/domain/media"
	"github.com/xiebiao/ebookstore/internal/infrastructure/config"
	apperrors "github.com/xiebiao/ebookstore/pkg/errors"
)

// Store S3对象存储
// 客户端通过预签名地址直接上传，服务端只保存key和公开URL
type Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	baseURL   string
	logger    *zap.Logger
}

var _ media.Store = (*Store)(nil)

var errBlob = apperrors.New(apperrors.ErrCodeBlobError, "Object storage error")

// NewStore 创建S3客户端
// Endpoint为空时使用AWS默认端点；MinIO等S3兼容服务填写Endpoint并开启UsePathStyle
func NewStore(ctx context.Context, cfg config.BlobConfig, logger *zap.Logger) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config failed: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Info("blob store ready", zap.String("bucket", cfg.Bucket), zap.String("region", cfg.Region))

	return &Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		baseURL:   publicBaseURL(cfg),
		logger:    logger,
	}, nil
}

// publicBaseURL 对象公开访问地址的前缀
func publicBaseURL(cfg config.BlobConfig) string {
	if cfg.Endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if cfg.UsePathStyle {
		return endpoint + "/" + cfg.Bucket
	}
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		u.Host = cfg.Bucket + "." + u.Host
		return u.String()
	}
	return endpoint + "/" + cfg.Bucket
}

// PresignUpload 生成预签名PUT地址
func (s *Store) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", apperrors.WithCause(errBlob, err)
	}
	return req.URL, nil
}

// PublicURL 对象的公开访问地址
func (s *Store) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

// Delete 删除对象（S3对不存在的key也返回成功）
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.WithCause(errBlob, err)
	}
	s.logger.Debug("blob deleted", zap.String("key", key))
	return nil
}

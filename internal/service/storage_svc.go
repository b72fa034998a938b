package service

import (
	"bytes"
	"context"
	"fmt"
	"path"

	appconfig "feedback_flow_v1_202608/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ==================== StorageService 对象存储服务 ====================

// StorageService 对象存储服务（S3），备份任务用
type StorageService struct {
	client *s3.Client
	cfg    appconfig.BackupConfig
}

// NewStorageService 创建存储服务
// Bucket 未配置时返回错误，调用方据此停用备份上传
func NewStorageService(cfg appconfig.BackupConfig) (*StorageService, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("备份 bucket 未配置")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("AWS 配置加载失败: %w", err)
	}

	return &StorageService{
		client: s3.NewFromConfig(awsCfg),
		cfg:    cfg,
	}, nil
}

// Upload 上传对象，返回对象键
func (s *StorageService) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := path.Join(s.cfg.BasePath, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("S3 上传失败: %w", err)
	}

	return key, nil
}

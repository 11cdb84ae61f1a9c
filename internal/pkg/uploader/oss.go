package uploader

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"topup_store/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// Uploader 对象存储抽象，checkout 和后台上传都通过它写入
type Uploader interface {
	// UploadImage 上传图片到 dir 目录下，返回可公开访问的 URL
	// 非图片类型直接拒绝
	UploadImage(dir string, file *multipart.FileHeader) (string, error)
}

// ErrNotImage 上传内容不是图片
var ErrNotImage = fmt.Errorf("only image files are allowed")

type AliyunOSSUploader struct {
	bucket *oss.Bucket
	config config.OSSConfig
}

func NewAliyunOSSUploader(cfg config.OSSConfig) (*AliyunOSSUploader, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &AliyunOSSUploader{
		bucket: bucket,
		config: cfg,
	}, nil
}

func (u *AliyunOSSUploader) UploadImage(dir string, file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 对象名：<dir>/<uuid>.<ext>，保留原始扩展名，缺省 .jpg
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	objectKey := fmt.Sprintf("%s/%s%s", strings.Trim(dir, "/"), uuid.New().String(), ext)

	if err := u.bucket.PutObject(objectKey, src, oss.ContentType(contentType)); err != nil {
		return "", err
	}

	// Note: bucket 是 public-read，私有 bucket 需要改为签名 URL
	url := fmt.Sprintf("https://%s.%s/%s", u.config.BucketName, u.config.Endpoint, objectKey)
	return url, nil
}

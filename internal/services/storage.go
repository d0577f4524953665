package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"

	"github.com/profast/parcel-api/internal/config"
)

// MaxImageSize bounds parcel image uploads.
const MaxImageSize = 5 << 20

var (
	ErrNotAnImage    = errors.New("uploaded file is not an image")
	ErrImageTooLarge = errors.New("uploaded image exceeds 5MB")
)

// Storage keeps uploaded parcel images in S3, or on local disk when AWS is not
// configured.
type Storage struct {
	uploader  *s3manager.Uploader
	bucket    string
	region    string
	useS3     bool
	uploadDir string
	baseURL   string
}

// NewStorage initializes either S3 or local storage based on configuration
func NewStorage(cfg *config.Config) (*Storage, error) {
	if cfg.UsesS3() {
		sess, err := session.NewSession(&aws.Config{
			Region:      aws.String(cfg.AWSRegion),
			Credentials: credentials.NewStaticCredentials(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %v", err)
		}

		log.Println("AWS S3 storage initialized successfully")
		return &Storage{
			uploader: s3manager.NewUploader(sess),
			bucket:   cfg.AWSS3Bucket,
			region:   cfg.AWSRegion,
			useS3:    true,
		}, nil
	}

	if err := os.MkdirAll(filepath.Join(cfg.UploadDir, "parcels"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}

	log.Println("AWS S3 not configured. Using local file storage (not recommended for production)")
	return &Storage{
		uploadDir: cfg.UploadDir,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// UploadDir is the directory served under /uploads in local mode.
func (s *Storage) UploadDir() string {
	return s.uploadDir
}

func (s *Storage) IsUsingS3() bool {
	return s.useS3
}

// UploadImage stores an image under folder and returns its public URL.
func (s *Storage) UploadImage(file *multipart.FileHeader, folder string) (string, error) {
	if file.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer src.Close()

	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, io.LimitReader(src, MaxImageSize+1)); err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	if buffer.Len() > MaxImageSize {
		return "", ErrImageTooLarge
	}

	contentType := http.DetectContentType(buffer.Bytes())
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if s.useS3 {
		return s.uploadToS3(buffer.Bytes(), contentType, folder+"/"+fileName)
	}
	return s.uploadLocally(buffer.Bytes(), folder, fileName)
}

func (s *Storage) uploadToS3(data []byte, contentType, key string) (string, error) {
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func (s *Storage) uploadLocally(data []byte, folder, fileName string) (string, error) {
	folderPath := filepath.Join(s.uploadDir, folder)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create folder directory: %v", err)
	}

	if err := os.WriteFile(filepath.Join(folderPath, fileName), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, fileName), nil
}

package initializers

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	MaxSize   int64
	FileTypes []string
	Expiry    time.Duration
}

var MinioClient *minio.Client
var Conf MinioConfig

// uploadsConfigYAML is the optional YAML override for upload settings.
// When the file exists it takes precedence over environment variables.
type uploadsConfigYAML struct {
	MaxFileSize        int64    `yaml:"max_file_size"`
	AllowedFileTypes   []string `yaml:"allowed_file_types"`
	PresignedURLExpiry int      `yaml:"presigned_url_expiry"` // seconds
}

func loadUploadsConfig() (*uploadsConfigYAML, error) {
	path := os.Getenv("UPLOADS_CONFIG_FILE")
	if strings.TrimSpace(path) == "" {
		path = "config/uploads.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg uploadsConfigYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitMinio connects to the object store holding the uploaded documents and
// ensures the notes bucket exists.
func InitMinio() error {
	Conf = MinioConfig{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    envOr("MINIO_BUCKET", "notes"),
		UseSSL:    strings.EqualFold(os.Getenv("MINIO_USE_SSL"), "true"),
		MaxSize:   parseInt64(os.Getenv("MAX_FILE_SIZE"), 26214400),
		FileTypes: parseFileTypes(os.Getenv("ALLOWED_FILE_TYPES")),
		Expiry:    parseExpiry(os.Getenv("PRESIGNED_URL_EXPIRY")),
	}

	if yamlCfg, err := loadUploadsConfig(); err == nil && yamlCfg != nil {
		if yamlCfg.MaxFileSize > 0 {
			Conf.MaxSize = yamlCfg.MaxFileSize
		}
		if len(yamlCfg.AllowedFileTypes) > 0 {
			Conf.FileTypes = yamlCfg.AllowedFileTypes
		}
		if yamlCfg.PresignedURLExpiry > 0 {
			Conf.Expiry = time.Duration(yamlCfg.PresignedURLExpiry) * time.Second
		}
	}

	client, err := minio.New(Conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(Conf.AccessKey, Conf.SecretKey, ""),
		Secure: Conf.UseSSL,
	})
	if err != nil {
		return err
	}
	MinioClient = client

	exists, err := client.BucketExists(context.Background(), Conf.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), Conf.Bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	log.Println("Minio bucket ready:", Conf.Bucket)
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseInt64(val string, def int64) int64 {
	if val == "" {
		return def
	}
	v, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func parseFileTypes(val string) []string {
	if val == "" {
		return []string{
			"application/pdf",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/vnd.openxmlformats-officedocument.presentationml.presentation",
			"image/png",
			"image/jpeg",
		}
	}
	return strings.Split(val, ",")
}

func parseExpiry(val string) time.Duration {
	if val == "" {
		return time.Hour
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return time.Hour
	}
	return time.Duration(v) * time.Second
}

func baseMIME(mime string) string {
	if mime == "" {
		return ""
	}
	parts := strings.Split(mime, ";")
	return strings.TrimSpace(parts[0])
}

// CheckFileAllowed enforces the upload size cap and MIME allowlist.
func CheckFileAllowed(size int64, mime string) error {
	if size > Conf.MaxSize {
		return fmt.Errorf("file size exceeds the limit")
	}
	incoming := baseMIME(mime)
	for _, t := range Conf.FileTypes {
		if baseMIME(t) == incoming {
			return nil
		}
	}
	return fmt.Errorf("file type is not allowed")
}

// GenerateDownloadURL builds a presigned GET link for a stored document,
// forcing an inline content disposition with a sanitized filename.
func GenerateDownloadURL(objectKey, fileName string) (string, error) {
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition",
		fmt.Sprintf("inline; filename=\"%s\"", SanitizeFilename(fileName)))

	presigned, err := MinioClient.PresignedGetObject(
		context.Background(), Conf.Bucket, objectKey, Conf.Expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to create presigned url: %v", err)
	}
	return presigned.String(), nil
}

// SanitizeFilename strips quotes, path separators, and control characters so
// the name is safe inside a Content-Disposition header.
func SanitizeFilename(name string) string {
	cleaned := strings.ReplaceAll(name, "\"", "")
	cleaned = strings.ReplaceAll(cleaned, "\\", "")
	cleaned = strings.ReplaceAll(cleaned, "/", "")
	cleaned = strings.ReplaceAll(cleaned, "..", "")
	b := make([]rune, 0, len(cleaned))
	for _, r := range cleaned {
		if r < 32 || r == 127 {
			continue
		}
		b = append(b, r)
	}
	s := strings.Join(strings.Fields(strings.TrimSpace(string(b))), " ")
	if s == "" {
		s = "file"
	}
	return s
}

package storage

import (
	"io"

	"github.com/vanbenpham/forunime-backend/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Storage struct {
	s3Client *s3.S3
	uploader *s3manager.Uploader
}

// NewS3Storage talks to AWS S3 or any S3-compatible server when S3_ENDPOINT
// is set. Credentials come from the standard AWS environment/config chain.
func NewS3Storage() *S3Storage {
	awsConfig := aws.Config{Region: aws.String(config.S3_REGION)}
	if config.S3_ENDPOINT != "" {
		awsConfig.Endpoint = aws.String(config.S3_ENDPOINT)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	sess := session.Must(session.NewSession(&awsConfig))
	return &S3Storage{
		s3Client: s3.New(sess),
		uploader: s3manager.NewUploader(sess),
	}
}

type countingReader struct {
	io.Reader
	total int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.total += int64(n)
	return n, err
}

func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	counter := &countingReader{Reader: reader}
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(config.S3_BUCKET),
		Key:    aws.String(path),
		Body:   counter,
		ACL:    aws.String("public-read"),
	})
	if err != nil {
		return 0, err
	}
	return counter.total, nil
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(config.S3_BUCKET),
		Key:    aws.String(path),
	})
	return err
}

func (s *S3Storage) URL(path string) string {
	if config.S3_ENDPOINT != "" {
		return config.S3_ENDPOINT + "/" + config.S3_BUCKET + "/" + path
	}
	return "https://" + config.S3_BUCKET + ".s3." + config.S3_REGION + ".amazonaws.com/" + path
}

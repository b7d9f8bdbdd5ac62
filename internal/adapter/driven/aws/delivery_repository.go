package aws

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sesTypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/repository"
	"github.com/diillson/aws-cost-reporter-go/internal/shared/types"
)

// DeliveryRepositoryImpl implementa o DeliveryRepository por cima de S3 e SES.
type DeliveryRepositoryImpl struct {
	cfg       aws.Config
	sesRegion string
	logger    zerolog.Logger
}

// NewDeliveryRepository cria uma nova implementação do DeliveryRepository.
func NewDeliveryRepository(ctx context.Context, sesRegion string, logger zerolog.Logger) (repository.DeliveryRepository, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &DeliveryRepositoryImpl{cfg: cfg, sesRegion: sesRegion, logger: logger}, nil
}

// Upload envia o arquivo para o bucket de arquivamento. Falhas são registradas
// e devolvidas como false; nunca interrompem a execução.
func (r *DeliveryRepositoryImpl) Upload(ctx context.Context, filePath, bucket string) bool {
	key := filepath.Base(filePath)

	file, err := os.Open(filePath)
	if err != nil {
		r.logger.Error().Err(&types.UploadError{Bucket: bucket, Key: key, Err: err}).Msg("upload failed")
		return false
	}
	defer file.Close()

	client := s3.NewFromConfig(r.cfg)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		r.logger.Error().Err(&types.UploadError{Bucket: bucket, Key: key, Err: err}).Msg("upload failed")
		return false
	}

	r.logger.Info().Str("bucket", bucket).Str("key", key).Msg("report uploaded")
	return true
}

// Send monta a mensagem multipart (parte HTML + anexos binários) e a envia
// como e-mail bruto pelo SES na região configurada.
func (r *DeliveryRepositoryImpl) Send(ctx context.Context, subject, from string, recipients []string, htmlBody string, attachments []string) (string, error) {
	msg := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	msg.SetHeader("From", from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	for _, attachment := range attachments {
		msg.Attach(attachment)
	}

	var raw bytes.Buffer
	if _, err := msg.WriteTo(&raw); err != nil {
		return "", &types.DeliveryError{Err: err}
	}

	sesCfg := r.cfg.Copy()
	if r.sesRegion != "" {
		sesCfg.Region = r.sesRegion
	}
	client := ses.NewFromConfig(sesCfg)

	out, err := client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(from),
		Destinations: recipients,
		RawMessage:   &sesTypes.RawMessage{Data: raw.Bytes()},
	})
	if err != nil {
		return "", &types.DeliveryError{Err: err}
	}

	messageID := aws.ToString(out.MessageId)
	r.logger.Info().Strs("recipients", recipients).Str("message_id", messageID).Msg("report email sent")
	return messageID, nil
}

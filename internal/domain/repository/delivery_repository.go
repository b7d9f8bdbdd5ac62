package repository

import "context"

// DeliveryRepository defines the interface for shipping the finished report.
type DeliveryRepository interface {
	// Upload envia o arquivo para o bucket de arquivamento. Falhas são
	// registradas no log e devolvidas como false, nunca como erro.
	Upload(ctx context.Context, filePath, bucket string) bool

	// Send monta a mensagem multipart (corpo HTML + anexos binários) e a
	// envia pelo transporte de e-mail, devolvendo o ID da mensagem.
	Send(ctx context.Context, subject, from string, recipients []string, htmlBody string, attachments []string) (string, error)
}

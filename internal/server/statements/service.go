// Package statements exports a user's transaction history as a CSV object
// in S3-compatible storage and hands back a short-lived presigned URL.
package statements

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/ledgerkeep/internal/server/config"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/transactions"
)

type Service struct {
	ledger *transactions.Service
	config *sc.Config
}

func NewService(ledger *transactions.Service, config *sc.Config) *Service {
	return &Service{
		ledger: ledger,
		config: config,
	}
}

// Export is the handle to one uploaded statement.
type Export struct {
	Key string
	URL string
}

// storageKey builds a date-bucketed object key for one user's statement.
func storageKey(userID int64) string {
	d := time.Now()
	return fmt.Sprintf("statements/%d/%d/%d/%d/%v", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *Service) getClient() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// renderCSV lays the records out as a statement. Amounts stay in their
// string form; a spreadsheet losing precision on big cents is the reader's
// problem, not ours.
func renderCSV(records []transactions.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "merchantId", "amountInCents", "timestamp"}); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(r.MerchantID, 10),
			r.AmountInCents.String(),
			r.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportForUser renders the user's full transaction history, uploads it,
// and returns the object key plus a presigned GET URL valid for the
// configured TTL. An empty history still exports a header-only statement.
func (s *Service) ExportForUser(ctx context.Context, userID int64) (*Export, error) {

	page, err := s.ledger.ListByUser(ctx, userID, transactions.Filter{})
	if err != nil {
		return nil, fmt.Errorf("error reading transactions: %v", err)
	}

	body, err := renderCSV(page.Items)
	if err != nil {
		return nil, fmt.Errorf("error rendering statement: %v", err)
	}

	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := storageKey(userID)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading statement: %v", err)
	}

	presignClient := s3.NewPresignClient(client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.StatementURLTTL))
	if err != nil {
		return nil, fmt.Errorf("error presigning statement url: %v", err)
	}

	return &Export{Key: key, URL: req.URL}, nil
}

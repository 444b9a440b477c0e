// Package objectstore implements the caller-owned object store spec §6
// describes: the core produces report JSON and PDF bytes, and a caller
// writes them to "reports/{borrower_id}/{report_id}.json" and ".pdf".
//
// Grounded on dafibh-fortuna-backend's repository/storage/s3_image_repo.go:
// a thin struct over an aws-sdk-go-v2 *s3.Client, one method per object
// kind, content-type set explicitly rather than sniffed.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"incomeverify/models"
)

// S3ReportStore writes LenderReport JSON and PDF renderings to a single
// S3 bucket, keyed per spec §6.
type S3ReportStore struct {
	client *s3.Client
	bucket string
}

// NewS3ReportStore wraps an already-configured s3.Client.
func NewS3ReportStore(client *s3.Client, bucket string) *S3ReportStore {
	return &S3ReportStore{client: client, bucket: bucket}
}

// PutReportJSON marshals r and writes it to reports/{borrower_id}/{report_id}.json.
func (s *S3ReportStore) PutReportJSON(ctx context.Context, r models.LenderReport) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("objectstore: marshaling report: %w", err)
	}

	key := jsonKey(r.Metadata.BorrowerID, r.Metadata.ReportID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("objectstore: writing %s: %w", key, err)
	}
	return nil
}

// PutReportPDF writes a pre-rendered PDF byte stream to
// reports/{borrower_id}/{report_id}.pdf.
func (s *S3ReportStore) PutReportPDF(ctx context.Context, borrowerID, reportID string, pdf []byte) error {
	key := pdfKey(borrowerID, reportID)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("objectstore: writing %s: %w", key, err)
	}
	return nil
}

// GetReportJSON reads back and unmarshals a previously stored report.
func (s *S3ReportStore) GetReportJSON(ctx context.Context, borrowerID, reportID string) (models.LenderReport, error) {
	key := jsonKey(borrowerID, reportID)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return models.LenderReport{}, fmt.Errorf("objectstore: reading %s: %w", key, err)
	}
	defer out.Body.Close()

	var r models.LenderReport
	if err := json.NewDecoder(out.Body).Decode(&r); err != nil {
		return models.LenderReport{}, fmt.Errorf("objectstore: decoding %s: %w", key, err)
	}
	return r, nil
}

func jsonKey(borrowerID, reportID string) string {
	return fmt.Sprintf("reports/%s/%s.json", borrowerID, reportID)
}

func pdfKey(borrowerID, reportID string) string {
	return fmt.Sprintf("reports/%s/%s.pdf", borrowerID, reportID)
}

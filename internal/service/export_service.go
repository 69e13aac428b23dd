package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/pkg/errors"
	"github.com/edugo-labs/aula-api/pkg/export"
)

type cardRenderer interface {
	Render(cards []export.QRCard) ([]byte, error)
}

// ExportService produces printable artifacts, currently the per-group QR
// attendance card sheets.
type ExportService struct {
	renderer cardRenderer
	students studentRepository
	groups   groupRepository
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewExportService constructs the export service. metrics may be nil.
func NewExportService(renderer cardRenderer, students studentRepository, groups groupRepository, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{renderer: renderer, students: students, groups: groups, metrics: metrics, logger: logger}
}

// GroupQRCards renders the QR card sheet for every active student of a group,
// ordered the same way the class list is. Students still waiting for a QR
// assignment are skipped.
func (s *ExportService) GroupQRCards(ctx context.Context, groupID int64) ([]byte, string, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, "", errors.Clone(errors.ErrNotFound, "group not found")
	}
	students, err := s.students.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list students")
	}
	cards := make([]export.QRCard, 0, len(students))
	for _, student := range students {
		if student.QRCodeID == nil {
			continue
		}
		cards = append(cards, export.QRCard{
			QRID:     *student.QRCodeID,
			Name:     fmt.Sprintf("%s %s", student.FirstName, student.LastName),
			Subtitle: fmt.Sprintf("%s · %s", group.SubjectName, group.Name),
		})
	}
	if len(cards) == 0 {
		return nil, "", errors.Clone(errors.ErrInvalidState, "group has no students with qr codes")
	}
	pdf, err := s.renderer.Render(cards)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to render qr cards")
	}
	s.metrics.RecordCardSheet()
	s.logger.Info("qr cards rendered", zap.Int64("group_id", groupID), zap.Int("cards", len(cards)))
	filename := fmt.Sprintf("qr-cards-group-%d.pdf", groupID)
	return pdf, filename, nil
}

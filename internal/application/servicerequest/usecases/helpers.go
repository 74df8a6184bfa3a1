package usecases

import (
	"context"
	stderrors "errors"

	"servicedesk/internal/application/servicerequest/dto"
	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/domain/user"
	"servicedesk/internal/shared/errors"
	"servicedesk/internal/shared/logger"
)

const notFoundMessage = "service request not found"

func validationError(err error) error {
	var fields servicerequest.FieldErrors
	if stderrors.As(err, &fields) {
		return errors.NewFieldValidationError(fields)
	}
	return errors.NewValidationError(err.Error())
}

// participantsOf lists the customer and staff IDs referenced by srs
// without duplicates.
func participantsOf(srs ...*servicerequest.ServiceRequest) []uint {
	seen := make(map[uint]struct{})
	ids := make([]uint, 0, len(srs)*2)
	add := func(id uint) {
		if _, ok := seen[id]; ok || id == 0 {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, sr := range srs {
		add(sr.CustomerID())
		if staff := sr.SupportStaffID(); staff != nil {
			add(*staff)
		}
	}
	return ids
}

// loadParticipants resolves the users referenced by srs. A lookup failure
// only costs the user summaries in the response, so it is logged and an
// empty map returned.
func loadParticipants(ctx context.Context, users UserReader, log logger.Interface, srs ...*servicerequest.ServiceRequest) map[uint]*user.User {
	result := make(map[uint]*user.User)
	ids := participantsOf(srs...)
	if len(ids) == 0 {
		return result
	}

	found, err := users.GetByIDs(ctx, ids)
	if err != nil {
		log.Warnw("failed to load request participants", "user_ids", ids, "error", err)
		return result
	}
	for _, u := range found {
		result[u.ID()] = u
	}
	return result
}

func toDetailedDTO(
	sr *servicerequest.ServiceRequest,
	users map[uint]*user.User,
	renderer DescriptionRenderer,
	log logger.Interface,
) *dto.ServiceRequestDTO {
	result := dto.ToServiceRequestDTO(sr, users)
	html, err := renderer.RenderHTML(sr.Description())
	if err != nil {
		log.Warnw("failed to render description", "sid", sr.SID(), "error", err)
		return result
	}
	result.DescriptionHTML = html
	return result
}

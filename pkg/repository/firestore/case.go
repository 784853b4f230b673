package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Field paths follow the firestore tags of model.Case
const (
	fieldStatus      = "status"
	fieldSubmittedBy = "submitted_by"
	fieldSubmittedAt = "submitted_at"
)

// CasesCollection is the unprefixed name of the case collection
const CasesCollection = "cases"

type caseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCaseRepository(client *firestore.Client) *caseRepository {
	return &caseRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *caseRepository) casesCollection() string {
	return CasesCollectionName(r.collectionPrefix)
}

// CasesCollectionName returns the case collection name under prefix
func CasesCollectionName(prefix string) string {
	if prefix != "" {
		return prefix + "_" + CasesCollection
	}
	return CasesCollection
}

func (r *caseRepository) doc(id model.CaseID) *firestore.DocumentRef {
	return r.client.Collection(r.casesCollection()).Doc(id.String())
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	if c.ID == "" {
		return nil, goerr.Wrap(model.ErrValidation, "case ID is required")
	}

	created := c.Copy()
	created.Version = 1

	if _, err := r.doc(created.ID).Create(ctx, created); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(model.ErrConflict, "case already exists", goerr.V(model.CaseIDKey, c.ID))
		}
		return nil, goerr.Wrap(err, "failed to create case", goerr.V(model.CaseIDKey, c.ID))
	}

	return created, nil
}

func (r *caseRepository) Get(ctx context.Context, id model.CaseID) (*model.Case, error) {
	docSnap, err := r.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
	}

	var c model.Case
	if err := docSnap.DataTo(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case", goerr.V(model.CaseIDKey, id))
	}

	return &c, nil
}

func (r *caseRepository) List(ctx context.Context, opts ...interfaces.ListCaseOption) ([]*model.Case, error) {
	cfg := interfaces.BuildListCaseConfig(opts...)

	query := r.client.Collection(r.casesCollection()).Query
	if s := cfg.Status(); s != nil {
		query = query.Where(fieldStatus, "==", s.String())
	}
	if ref := cfg.SubmittedBy(); ref != nil {
		query = query.Where(fieldSubmittedBy, "==", *ref)
	}

	iter := query.
		OrderBy(fieldSubmittedAt, firestore.Asc).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	cases := make([]*model.Case, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cases")
		}

		var c model.Case
		if err := docSnap.DataTo(&c); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case", goerr.V("doc_id", docSnap.Ref.ID))
		}

		cases = append(cases, &c)
	}

	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) (*model.Case, error) {
	docRef := r.doc(c.ID)

	var updated *model.Case
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, c.ID))
			}
			return goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, c.ID))
		}

		var existing model.Case
		if err := docSnap.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode case", goerr.V(model.CaseIDKey, c.ID))
		}
		if existing.Version != c.Version {
			return goerr.Wrap(model.ErrConflict, "case version mismatch",
				goerr.V(model.CaseIDKey, c.ID),
				goerr.V(model.VersionKey, c.Version),
				goerr.V("stored_version", existing.Version))
		}

		next := c.Copy()
		next.SubmittedAt = existing.SubmittedAt
		next.SubmittedBy = existing.SubmittedBy
		next.Version = existing.Version + 1
		if err := tx.Set(docRef, next); err != nil {
			return goerr.Wrap(err, "failed to update case", goerr.V(model.CaseIDKey, c.ID))
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

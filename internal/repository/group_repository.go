package repository

import (
	"context"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
)

// GroupRepo manages API collection groups and their user assignments. The
// policy middleware consults ListGroupNamesForUser on every group-gated
// request: identity -> assigned group ids -> group names.
type GroupRepo struct{ DB DBTX }

func NewGroupRepo(db DBTX) *GroupRepo { return &GroupRepo{DB: db} }

// CreateGroup inserts a named permission group.
func (r *GroupRepo) CreateGroup(ctx context.Context, name string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO api_collection_groups (Name) VALUES (?)", name)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// ListGroups returns every permission group.
func (r *GroupRepo) ListGroups(ctx context.Context) ([]model.ApiCollectionGroup, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT ApiGroupID, Name FROM api_collection_groups")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ApiCollectionGroup
	for rows.Next() {
		var g model.ApiCollectionGroup
		if err := rows.Scan(&g.ApiGroupID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// AssignGroupToUser links a user to a permission group.
func (r *GroupRepo) AssignGroupToUser(ctx context.Context, a model.UserApiCollectionGroup) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_api_collection_group (UUID, UserUUID, ApiCollectionGroupID) VALUES (?,?,?)",
		a.UUID, a.UserUUID, a.ApiCollectionGroupID)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// ListGroupNamesForUser resolves a user's assigned group ids to names. A
// user with no assignments gets an empty slice, which denies every
// group-gated resource.
func (r *GroupRepo) ListGroupNamesForUser(ctx context.Context, userUUID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT g.Name
		 FROM user_api_collection_group ug
		 JOIN api_collection_groups g ON g.ApiGroupID = ug.ApiCollectionGroupID
		 WHERE ug.UserUUID = ?`, userUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

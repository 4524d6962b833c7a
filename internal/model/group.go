package model

// ApiCollectionGroup mirrors `api_collection_groups`. Group names match
// resource families ("customers", "leads", "sales") and drive the
// resource-group authorization gate.
type ApiCollectionGroup struct {
	ApiGroupID int    `json:"ApiGroupID"`
	Name       string `json:"Name"`
}

// UserApiCollectionGroup mirrors `user_api_collection_group`, the
// many-to-many assignment of users to groups.
type UserApiCollectionGroup struct {
	UUID                 string `json:"UUID"`
	UserUUID             string `json:"UserUUID"`
	ApiCollectionGroupID int    `json:"ApiCollectionGroupID"`
}

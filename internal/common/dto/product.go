package dto

// ContributorInput links an artist, optionally with a contribution type,
// to a product being created or updated.
type ContributorInput struct {
	ArtistID           uint  `json:"artistId" binding:"required"`
	ContributionTypeID *uint `json:"contributionTypeId,omitempty"`
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name         string             `json:"name"`
	CoverArtID   uint               `json:"coverArtId"`
	Contributors []ContributorInput `json:"contributors"`
}

// UpdateProductRequest carries partial update fields. Nil pointers mean
// "leave unchanged"; a non-nil empty Contributors slice clears all
// contributor rows.
type UpdateProductRequest struct {
	Name         *string             `json:"name,omitempty"`
	CoverArtID   *uint               `json:"coverArtId,omitempty"`
	Contributors *[]ContributorInput `json:"contributors,omitempty"`
}

// CreateArtistRequest represents an artist creation request
type CreateArtistRequest struct {
	Name string `json:"name"`
}

// CoverArtUploadResponse represents a successful cover art upload
type CoverArtUploadResponse struct {
	CoverArtID uint   `json:"coverArtId"`
	PublicURL  string `json:"publicUrl"`
}

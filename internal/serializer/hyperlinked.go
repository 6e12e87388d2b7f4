package serializer

import (
	"strconv"
	"strings"

	dom "UserAPI/internal/domain"
	"UserAPI/internal/dto"
)

// HyperlinkedUserSerializer is the variant the /users/ routes use: the plain
// fields plus a "url" pointing at the record's own detail route.
type HyperlinkedUserSerializer struct {
	*UserSerializer
	collection string
}

// NewHyperlinkedUserSerializer links records under collection, e.g. "/users/".
func NewHyperlinkedUserSerializer(base *UserSerializer, collection string) *HyperlinkedUserSerializer {
	if !strings.HasSuffix(collection, "/") {
		collection += "/"
	}
	return &HyperlinkedUserSerializer{UserSerializer: base, collection: collection}
}

// CollectionURL is the absolute list route for the given origin ("http://host").
func (s *HyperlinkedUserSerializer) CollectionURL(origin string) string {
	return strings.TrimSuffix(origin, "/") + s.collection
}

// DetailURL is the absolute detail route of record id.
func (s *HyperlinkedUserSerializer) DetailURL(origin string, id int64) string {
	return s.CollectionURL(origin) + strconv.FormatInt(id, 10) + "/"
}

func (s *HyperlinkedUserSerializer) ToResponse(origin string, u dom.User) dto.UserResponse {
	return dto.UserResponse{
		URL:        s.DetailURL(origin, u.ID),
		UserFields: s.ToFields(u),
	}
}

func (s *HyperlinkedUserSerializer) ToResponses(origin string, list []dom.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(list))
	for i := range list {
		out[i] = s.ToResponse(origin, list[i])
	}
	return out
}

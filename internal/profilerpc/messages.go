package profilerpc

import (
	"errors"

	"google.golang.org/protobuf/types/known/structpb"
)

var ErrMissingField = errors.New("missing message field")

// Profile is the wire shape of a profile row.
type Profile struct {
	UserID      string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
}

func str(v string) *structpb.Value { return structpb.NewStringValue(v) }

func (p Profile) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"user_id":      str(p.UserID),
		"email":        str(p.Email),
		"first_name":   str(p.FirstName),
		"last_name":    str(p.LastName),
		"phone_number": str(p.PhoneNumber),
	}}
}

// ProfileFromStruct decodes a profile; user_id and email are mandatory.
func ProfileFromStruct(s *structpb.Struct) (Profile, error) {
	f := s.GetFields()
	p := Profile{
		UserID:      f["user_id"].GetStringValue(),
		Email:       f["email"].GetStringValue(),
		FirstName:   f["first_name"].GetStringValue(),
		LastName:    f["last_name"].GetStringValue(),
		PhoneNumber: f["phone_number"].GetStringValue(),
	}
	if p.UserID == "" || p.Email == "" {
		return Profile{}, ErrMissingField
	}
	return p, nil
}

func FindByEmailRequest(email string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{"email": str(email)}}
}

func ParseFindByEmailRequest(s *structpb.Struct) (string, error) {
	email := s.GetFields()["email"].GetStringValue()
	if email == "" {
		return "", ErrMissingField
	}
	return email, nil
}

func FindByEmailResponse(p *Profile) *structpb.Struct {
	if p == nil {
		return &structpb.Struct{Fields: map[string]*structpb.Value{"found": structpb.NewBoolValue(false)}}
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"found":   structpb.NewBoolValue(true),
		"profile": structpb.NewStructValue(p.Struct()),
	}}
}

// ParseFindByEmailResponse returns nil, nil when the store reported no match.
func ParseFindByEmailResponse(s *structpb.Struct) (*Profile, error) {
	f := s.GetFields()
	if !f["found"].GetBoolValue() {
		return nil, nil
	}
	p, err := ProfileFromStruct(f["profile"].GetStructValue())
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func InsertRequest(p Profile) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{"profile": structpb.NewStructValue(p.Struct())}}
}

// InsertResponse echoes the stored profile back in the Insert request shape.
func InsertResponse(p Profile) *structpb.Struct {
	return InsertRequest(p)
}

// ProfileField extracts the nested "profile" message used by Insert.
func ProfileField(s *structpb.Struct) (Profile, error) {
	return ProfileFromStruct(s.GetFields()["profile"].GetStructValue())
}

func DeleteRequest(table, userID string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"table":   str(table),
		"user_id": str(userID),
	}}
}

func ParseDeleteRequest(s *structpb.Struct) (table, userID string, err error) {
	f := s.GetFields()
	table, userID = f["table"].GetStringValue(), f["user_id"].GetStringValue()
	if table == "" || userID == "" {
		return "", "", ErrMissingField
	}
	return table, userID, nil
}

func DeleteResponse(n int64) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{"deleted": structpb.NewNumberValue(float64(n))}}
}

func PingResponse(status string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{"status": str(status)}}
}

func PingStatus(s *structpb.Struct) string {
	return s.GetFields()["status"].GetStringValue()
}

package profilerpc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestFindByEmailResponse_Found(t *testing.T) {
	want := Profile{UserID: "u1", Email: "a@b.com", FirstName: "Ann", LastName: "Lee", PhoneNumber: "5551234567"}

	got, err := ParseFindByEmailResponse(FindByEmailResponse(&want))
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestFindByEmailResponse_NotFound(t *testing.T) {
	got, err := ParseFindByEmailResponse(FindByEmailResponse(nil))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseFindByEmailResponse(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileFromStruct_RequiresIDAndEmail(t *testing.T) {
	_, err := ProfileFromStruct(&structpb.Struct{})
	require.ErrorIs(t, err, ErrMissingField)

	_, err = ProfileField(InsertRequest(Profile{UserID: "u1"}))
	require.ErrorIs(t, err, ErrMissingField)
}

func TestDeleteRequest(t *testing.T) {
	table, id, err := ParseDeleteRequest(DeleteRequest(TableUserData, "u1"))
	require.NoError(t, err)
	assert.Equal(t, TableUserData, table)
	assert.Equal(t, "u1", id)

	_, _, err = ParseDeleteRequest(DeleteRequest("", "u1"))
	require.ErrorIs(t, err, ErrMissingField)
}

func TestPing(t *testing.T) {
	assert.Equal(t, StatusOK, PingStatus(PingResponse(StatusOK)))
	assert.Empty(t, PingStatus(nil))
}

func TestParseFindByEmailRequest(t *testing.T) {
	email, err := ParseFindByEmailRequest(FindByEmailRequest("ann@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", email)

	_, err = ParseFindByEmailRequest(FindByEmailRequest(""))
	require.ErrorIs(t, err, ErrMissingField)
}

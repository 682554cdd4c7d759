package utils

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewTransferReference(t time.Time) string
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// NewTransferReference builds a reference like REF-MBB5K2QG from the
// millisecond timestamp in base36.
func (u *utils) NewTransferReference(t time.Time) string {
	encoded := strconv.FormatInt(t.UnixMilli(), 36)
	return fmt.Sprintf("REF-%s", strings.ToUpper(encoded))
}

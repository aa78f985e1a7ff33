package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/sonyflake"

	"github.com/mbeoliero/realty/pkg/constant"
)

// epoch is the sonyflake start time; ids stay short for property codes
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var (
	flake     *sonyflake.Sonyflake
	flakeOnce sync.Once
	flakeErr  error
)

func node() (*sonyflake.Sonyflake, error) {
	flakeOnce.Do(func() {
		flake, flakeErr = sonyflake.New(sonyflake.Settings{
			StartTime: epoch,
			MachineID: func() (uint16, error) { return 1, nil },
		})
		if flakeErr != nil {
			flakeErr = fmt.Errorf("init sonyflake: %w", flakeErr)
		}
	})
	return flake, flakeErr
}

// NextID returns a time-ordered decimal id, used for user ids
func NextID() (string, error) {
	sf, err := node()
	if err != nil {
		return "", err
	}
	id, err := sf.NextID()
	if err != nil {
		return "", fmt.Errorf("next sonyflake id: %w", err)
	}
	return strconv.FormatUint(id, 10), nil
}

// NextPropertyCode returns a human readable property code, e.g. PROP-5821391822
func NextPropertyCode() (string, error) {
	id, err := NextID()
	if err != nil {
		return "", err
	}
	return constant.PropertyCodePrefix + id, nil
}

// NewDeviceId names a push subscription whose client sent no device id
func NewDeviceId() string {
	return uuid.NewString()
}

// NewTempPassword returns the 12 character password mailed to invited agents
func NewTempPassword() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

package cart

import (
	"errors"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

const (
	DefaultDeviceID   = "default"
	maxDeviceIDLength = 64
)

var ErrOwnerIsNotConstructed = errors.New("Owner must be created via NewOwner constructor")

// Owner identifies the customer session a cart belongs to. A customer may keep one
// cart per device.
type Owner struct {
	customerID kernel.UUID
	deviceID   string
	guard      guard.ConstructorGuard
}

// NewOwner creates an Owner. An empty deviceID falls back to DefaultDeviceID.
func NewOwner(customerID kernel.UUID, deviceID string) (Owner, error) {
	if err := customerID.Validate(); err != nil {
		return Owner{}, err
	}

	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		deviceID = DefaultDeviceID
	}
	if len(deviceID) > maxDeviceIDLength {
		return Owner{}, errs.NewValueIsOutOfRangeError("deviceId length", len(deviceID), 1, maxDeviceIDLength)
	}

	return Owner{customerID: customerID, deviceID: deviceID, guard: guard.NewConstructorGuard()}, nil
}

func (o Owner) Validate() error {
	return o.guard.Validate(ErrOwnerIsNotConstructed)
}

func (o Owner) CustomerID() kernel.UUID {
	return o.customerID
}

func (o Owner) DeviceID() string {
	return o.deviceID
}

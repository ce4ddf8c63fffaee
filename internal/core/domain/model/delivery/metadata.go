package delivery

import "bytes"

// Metadata holds the descriptive business payloads of a delivery. The values
// are opaque to the lifecycle and never change after creation.
type Metadata struct {
	SenderName     []byte
	ReceiverName   []byte
	PickupAddress  []byte
	DropoffAddress []byte
	Method         []byte
	Description    []byte
	Priority       []byte
}

func (m Metadata) clone() Metadata {
	return Metadata{
		SenderName:     bytes.Clone(m.SenderName),
		ReceiverName:   bytes.Clone(m.ReceiverName),
		PickupAddress:  bytes.Clone(m.PickupAddress),
		DropoffAddress: bytes.Clone(m.DropoffAddress),
		Method:         bytes.Clone(m.Method),
		Description:    bytes.Clone(m.Description),
		Priority:       bytes.Clone(m.Priority),
	}
}

// Details is the read model returned to any caller: whether the delivery is
// finished and what it costs.
type Details struct {
	Finished bool
	Cost     uint64
}

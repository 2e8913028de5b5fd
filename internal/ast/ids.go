package ast

type (
	FileID    uint32
	ParID     uint32
	ContentID uint32
	// индекс в per-kind арене
	PayloadID uint32
)

const (
	NoFileID    FileID    = 0
	NoParID     ParID     = 0
	NoContentID ContentID = 0
	NoPayloadID PayloadID = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id ParID) IsValid() bool     { return id != NoParID }
func (id ContentID) IsValid() bool { return id != NoContentID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }

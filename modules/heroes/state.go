package heroes

import (
	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/lib/borsh"
)

// HeroRecord is one catalog entry. HeroID doubles as the record's slot index
// and never changes after creation: it fixes the record's byte offset inside
// the repository region.
type HeroRecord struct {
	HeroID      uint8         `json:"heroId"`
	ContentURI  string        `json:"contentUri"`
	KeyNFT      types.Address `json:"keyNft"`
	LastPrice   uint64        `json:"lastPrice"`
	ListedPrice uint64        `json:"listedPrice"`
}

// slotRange returns the byte range of heroID's slot inside a repository data
// region of len(data) bytes.
func slotRange(data []byte, heroID uint8) (start, end int, err error) {
	start = int(heroID) * RecordSize
	end = start + RecordSize
	if end > len(data) {
		return 0, 0, errors.Wrapf(ErrSlotOutOfRange, "hero id %d, repository holds %d slots", heroID, len(data)/RecordSize)
	}
	return start, end, nil
}

// UnpackRecord reads the record stored at heroID's slot.
func UnpackRecord(data []byte, heroID uint8) (HeroRecord, error) {
	start, end, err := slotRange(data, heroID)
	if err != nil {
		return HeroRecord{}, err
	}

	r := borsh.NewReader(data[start:end])
	id, err := r.ReadUint8()
	if err != nil {
		return HeroRecord{}, errors.Wrap(ErrMalformedRecord, "hero id")
	}
	uri, err := r.ReadString()
	if err != nil {
		return HeroRecord{}, errors.Wrap(ErrMalformedRecord, "content uri")
	}
	key, err := r.ReadBytes32()
	if err != nil {
		return HeroRecord{}, errors.Wrap(ErrMalformedRecord, "nft key")
	}
	lastPrice, err := r.ReadUint64()
	if err != nil {
		return HeroRecord{}, errors.Wrap(ErrMalformedRecord, "last price")
	}
	listedPrice, err := r.ReadUint64()
	if err != nil {
		return HeroRecord{}, errors.Wrap(ErrMalformedRecord, "listed price")
	}

	return HeroRecord{
		HeroID:      id,
		ContentURI:  uri,
		KeyNFT:      key,
		LastPrice:   lastPrice,
		ListedPrice: listedPrice,
	}, nil
}

// Pack writes the record's canonical serialization into its slot,
// overwriting the full slot (serialized form plus zero padding). The slot is
// untouched if the record does not fit.
func (rec HeroRecord) Pack(data []byte) error {
	start, end, err := slotRange(data, rec.HeroID)
	if err != nil {
		return err
	}

	w := borsh.NewWriter()
	w.WriteUint8(rec.HeroID)
	w.WriteString(rec.ContentURI)
	w.WriteBytes32(rec.KeyNFT)
	w.WriteUint64(rec.LastPrice)
	w.WriteUint64(rec.ListedPrice)
	if w.Len() > RecordSize {
		return errors.Wrapf(ErrRecordTooLarge, "serialized record is %d bytes, slot holds %d", w.Len(), RecordSize)
	}

	slot := data[start:end]
	n := copy(slot, w.Bytes())
	for i := n; i < len(slot); i++ {
		slot[i] = 0
	}
	return nil
}

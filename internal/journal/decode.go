package journal

import (
	"fmt"
	"time"

	"github.com/valyala/fastjson"
)

const (
	fieldTimestamp = "timestamp"
	fieldEvent     = "event"
)

// Decode parses one journal line. The parser is reused between calls; the
// returned Record holds no references into its memory.
func Decode(p *fastjson.Parser, source string, line int, data []byte) (Record, error) {
	rec, _, err := decodeLine(p, source, line, data, nil)
	return rec, err
}

// decodeLine validates the timestamp and kind of every line. When skip
// reports the kind, it stops there and returns skipped=true without
// decoding fields or payload.
func decodeLine(p *fastjson.Parser, source string, line int, data []byte, skip func(kind string) bool) (rec Record, skipped bool, err error) {
	v, err := p.ParseBytes(data)
	if err != nil {
		return Record{}, false, &DecodeError{Source: source, Line: line, Err: err}
	}
	obj, err := v.Object()
	if err != nil {
		return Record{}, false, &DecodeError{Source: source, Line: line, Err: ErrNotObject}
	}

	rec = Record{Source: source, Line: line}

	tsValue := obj.Get(fieldTimestamp)
	if tsValue == nil || tsValue.Type() != fastjson.TypeString {
		raw := ""
		if tsValue != nil {
			raw = tsValue.String()
		}
		return Record{}, false, &TimestampError{Source: source, Line: line, Value: raw, Err: ErrMissingTimestamp}
	}
	tsText := string(tsValue.GetStringBytes())
	ts, err := time.Parse(time.RFC3339, tsText)
	if err != nil {
		return Record{}, false, &TimestampError{Source: source, Line: line, Value: tsText, Err: err}
	}
	rec.Timestamp = ts

	kind := optionalString(obj, fieldEvent)
	if kind == "" {
		return Record{}, false, &DecodeError{Source: source, Line: line, Err: fmt.Errorf("%w: %s", ErrMissingField, fieldEvent)}
	}
	if skip != nil && skip(kind) {
		return Record{}, true, nil
	}
	rec.Kind = kind

	rec.Fields = make(map[string]any, obj.Len())
	obj.Visit(func(key []byte, value *fastjson.Value) {
		name := string(key)
		if name == fieldTimestamp || name == fieldEvent {
			return
		}
		rec.Fields[name] = fieldValue(value)
	})

	payload, err := decodePayload(kind, obj)
	if err != nil {
		return Record{}, false, &DecodeError{Source: source, Line: line, Err: err}
	}
	rec.Payload = payload

	return rec, false, nil
}

func decodePayload(kind string, obj *fastjson.Object) (Payload, error) {
	switch kind {
	case KindMissionAccepted:
		id, err := requiredInt(obj, "MissionID")
		if err != nil {
			return nil, err
		}
		name := optionalString(obj, "LocalisedName")
		if name == "" {
			name = optionalString(obj, "Name")
		}
		return MissionAccepted{
			MissionID:          id,
			Name:               name,
			Faction:            optionalString(obj, "Faction"),
			DestinationSystem:  optionalString(obj, "DestinationSystem"),
			DestinationStation: optionalString(obj, "DestinationStation"),
		}, nil
	case KindMissionCompleted, KindMissionAbandoned, KindMissionFailed, KindMissionRedirected:
		id, err := requiredInt(obj, "MissionID")
		if err != nil {
			return nil, err
		}
		return MissionTransition{
			MissionID:             id,
			NewDestinationSystem:  optionalString(obj, "NewDestinationSystem"),
			NewDestinationStation: optionalString(obj, "NewDestinationStation"),
		}, nil
	case KindMarketBuy, KindMarketSell:
		marketID, err := requiredInt(obj, "MarketID")
		if err != nil {
			return nil, err
		}
		tx := MarketTransaction{
			MarketID:      marketID,
			Type:          optionalString(obj, "Type"),
			TypeLocalised: optionalString(obj, "Type_Localised"),
			Count:         optionalInt(obj, "Count"),
			Buy:           kind == KindMarketBuy,
		}
		if tx.Buy {
			tx.Amount = optionalInt(obj, "TotalCost")
		} else {
			tx.Amount = optionalInt(obj, "TotalSale")
		}
		return tx, nil
	case KindDocked:
		marketID, err := requiredInt(obj, "MarketID")
		if err != nil {
			return nil, err
		}
		return Docked{
			MarketID:    marketID,
			StationName: optionalString(obj, "StationName"),
			StarSystem:  optionalString(obj, "StarSystem"),
		}, nil
	default:
		return Unrecognized{}, nil
	}
}

func requiredInt(obj *fastjson.Object, name string) (int64, error) {
	v := obj.Get(name)
	if v == nil || v.Type() == fastjson.TypeNull {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	n, err := v.Int64()
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return n, nil
}

func optionalInt(obj *fastjson.Object, name string) int64 {
	v := obj.Get(name)
	if v == nil || v.Type() != fastjson.TypeNumber {
		return 0
	}
	n, err := v.Int64()
	if err != nil {
		f, _ := v.Float64()
		return int64(f)
	}
	return n
}

func optionalString(obj *fastjson.Object, name string) string {
	v := obj.Get(name)
	if v == nil || v.Type() != fastjson.TypeString {
		return ""
	}
	return string(v.GetStringBytes())
}

func fieldValue(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		f, _ := v.Float64()
		return f
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeNull:
		return nil
	default:
		return v.String()
	}
}

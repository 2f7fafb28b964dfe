// vi: sw=4 ts=4:

/*

	Mnemonic:	coordinator_wire
	Abstract:	protowire encodings for the two record types C9 writes to the
				coordinator: WorkerRegistration and ChateauMetadata. Kept
				separate from wire.go since these travel over the
				coordinator's KV protocol, not the RPC envelope.
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"github.com/tanneberger/aspen/gizmos"
)

func encode_worker_registration(wr gizmos.WorkerRegistration) []byte {
	var b []byte
	b = append_string_field(b, 1, wr.WorkerId)
	b = append_string_field(b, 2, wr.SocketAddr)
	b = append_varint_field(b, 3, uint64(wr.LeaseId))
	return b
}

func decode_worker_registration(buf []byte) (gizmos.WorkerRegistration, error) {
	wr := gizmos.WorkerRegistration{}
	for len(buf) > 0 {
		num, typ, n, err := consume_tag(buf)
		if err != nil {
			return wr, err
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consume_string(buf)
			if err != nil {
				return wr, err
			}
			wr.WorkerId = v
			buf = buf[n:]
		case 2:
			v, n, err := consume_string(buf)
			if err != nil {
				return wr, err
			}
			wr.SocketAddr = v
			buf = buf[n:]
		case 3:
			v, n, err := consume_varint(buf)
			if err != nil {
				return wr, err
			}
			wr.LeaseId = int64(v)
			buf = buf[n:]
		default:
			buf = buf[skip_field(num, typ, buf):]
		}
	}
	return wr, nil
}

func encode_chateau_metadata(cm gizmos.ChateauMetadata) []byte {
	var b []byte
	b = append_string_field(b, 1, cm.ChateauId)
	b = append_string_field(b, 2, cm.WorkerId)
	b = append_string_field(b, 3, cm.SocketAddr)
	return b
}

func decode_chateau_metadata(buf []byte) (gizmos.ChateauMetadata, error) {
	cm := gizmos.ChateauMetadata{}
	for len(buf) > 0 {
		num, typ, n, err := consume_tag(buf)
		if err != nil {
			return cm, err
		}
		buf = buf[n:]
		switch num {
		case 1:
			v, n, err := consume_string(buf)
			if err != nil {
				return cm, err
			}
			cm.ChateauId = v
			buf = buf[n:]
		case 2:
			v, n, err := consume_string(buf)
			if err != nil {
				return cm, err
			}
			cm.WorkerId = v
			buf = buf[n:]
		case 3:
			v, n, err := consume_string(buf)
			if err != nil {
				return cm, err
			}
			cm.SocketAddr = v
			buf = buf[n:]
		default:
			buf = buf[skip_field(num, typ, buf):]
		}
	}
	return cm, nil
}

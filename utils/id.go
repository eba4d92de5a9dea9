package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/blake2b"
)

const encodedLen = 20
const encoding = "0123456789abcdefghijklmnopqrstuv"

var machine = make([]byte, 3)
var pid = os.Getpid()
var counter = randInt()

func init() {
	hid, _ := os.Hostname()
	hw := sha256.New()
	hw.Write([]byte(hid))
	copy(machine, hw.Sum(nil))
}

// XID returns a sortable, process unique id used to name envelopes.
func XID() string {
	var tail [8]byte
	copy(tail[:3], machine)
	tail[3] = byte(pid >> 8)
	tail[4] = byte(pid)
	i := atomic.AddUint32(&counter, 1)
	tail[5] = byte(i >> 16)
	tail[6] = byte(i >> 8)
	tail[7] = byte(i)
	return newID(time.Now(), tail)
}

// ContentID derives an id from a timestamp and a message's bytes. The same
// input always yields the same id, so reprocessing a mailbox is stable.
func ContentID(ts time.Time, content []byte) string {
	sum := blake2b.Sum256(content)
	var tail [8]byte
	copy(tail[:], sum[:8])
	return newID(ts, tail)
}

// MessageID formats ContentID as a Message-ID value for host.
func MessageID(ts time.Time, content []byte, host string) string {
	return fmt.Sprintf("<%s@%s>", ContentID(ts, content), host)
}

func newID(ts time.Time, tail [8]byte) string {
	id := make([]byte, 12)
	var secs uint32
	if !ts.IsZero() && ts.Unix() > 0 {
		secs = uint32(ts.Unix())
	}
	binary.BigEndian.PutUint32(id[0:4], secs)
	copy(id[4:], tail[:])

	text := make([]byte, encodedLen)
	encode(text, id)
	return string(text)
}

func randInt() uint32 {
	b := make([]byte, 3)
	_, _ = rand.Reader.Read(b)
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// encode writes id as 20 characters of base32hex without padding.
func encode(dst, id []byte) {
	_ = dst[19]
	_ = id[11]

	dst[19] = encoding[(id[11]<<4)&0x1F]
	dst[18] = encoding[(id[11]>>1)&0x1F]
	dst[17] = encoding[(id[11]>>6)|(id[10]<<2)&0x1F]
	dst[16] = encoding[id[10]>>3]
	dst[15] = encoding[id[9]&0x1F]
	dst[14] = encoding[(id[9]>>5)|(id[8]<<3)&0x1F]
	dst[13] = encoding[(id[8]>>2)&0x1F]
	dst[12] = encoding[id[8]>>7|(id[7]<<1)&0x1F]
	dst[11] = encoding[(id[7]>>4)|(id[6]<<4)&0x1F]
	dst[10] = encoding[(id[6]>>1)&0x1F]
	dst[9] = encoding[(id[6]>>6)|(id[5]<<2)&0x1F]
	dst[8] = encoding[id[5]>>3]
	dst[7] = encoding[id[4]&0x1F]
	dst[6] = encoding[id[4]>>5|(id[3]<<3)&0x1F]
	dst[5] = encoding[(id[3]>>2)&0x1F]
	dst[4] = encoding[id[3]>>7|(id[2]<<1)&0x1F]
	dst[3] = encoding[(id[2]>>4)|(id[1]<<4)&0x1F]
	dst[2] = encoding[(id[1]>>1)&0x1F]
	dst[1] = encoding[(id[1]>>6)|(id[0]<<2)&0x1F]
	dst[0] = encoding[id[0]>>3]
}

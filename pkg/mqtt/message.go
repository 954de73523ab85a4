package mqtt

// https://docs.oasis-open.org/mqtt/mqtt/v3.1.1/mqtt-v3.1.1.html
const (
	CONNECT    = 0x10
	CONNACK    = 0x20
	PUBLISH    = 0x30
	PUBACK     = 0x40
	DISCONNECT = 0xE0
)

type Message struct {
	b []byte
}

func (m *Message) WriteByte(b byte) {
	m.b = append(m.b, b)
}

func (m *Message) WriteBytes(b []byte) {
	m.b = append(m.b, b...)
}

func (m *Message) WriteUint16(i uint16) {
	m.b = append(m.b, byte(i>>8), byte(i))
}

// WriteLen - variable length encoding, 7 bits per byte.
func (m *Message) WriteLen(i int) {
	if i == 0 {
		m.WriteByte(0)
		return
	}
	for i > 0 {
		b := byte(i % 128)
		if i /= 128; i > 0 {
			b |= 0x80
		}
		m.WriteByte(b)
	}
}

func (m *Message) WriteString(s string) {
	m.WriteUint16(uint16(len(s)))
	m.b = append(m.b, s...)
}

func (m *Message) Bytes() []byte {
	return m.b
}

const (
	flagCleanStart = 0x02
	flagPassword   = 0x40
	flagUsername   = 0x80
)

func NewConnect(clientID, username, password string) *Message {
	flags := byte(flagCleanStart)
	size := 12 + len(clientID)
	if username != "" {
		flags |= flagUsername | flagPassword
		size += 4 + len(username) + len(password)
	}

	m := &Message{}
	m.WriteByte(CONNECT)
	m.WriteLen(size)

	m.WriteString("MQTT")
	m.WriteByte(4) // protocol level 3.1.1
	m.WriteByte(flags)
	m.WriteUint16(30) // keepalive

	m.WriteString(clientID)
	if username != "" {
		m.WriteString(username)
		m.WriteString(password)
	}
	return m
}

func NewPublish(topic string, payload []byte) *Message {
	m := &Message{}
	m.WriteByte(PUBLISH)
	m.WriteLen(2 + len(topic) + len(payload))

	m.WriteString(topic)
	m.WriteBytes(payload)
	return m
}

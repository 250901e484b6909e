package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// service is a running landmark service and its framed stdin/stdout pipes.
type service struct {
	cmd *exec.Cmd
	in  io.WriteCloser
	out *bufio.Reader
}

func startService(python, script string, args []string) (*service, error) {
	cmd := exec.Command(python, append([]string{script}, args...)...)
	cmd.Stderr = os.Stderr

	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("landmark service stdin: %w", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("landmark service stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start landmark service: %w", err)
	}

	return &service{cmd: cmd, in: in, out: bufio.NewReader(out)}, nil
}

// wireHand is one hand as reported by the service. Points may hold fewer or
// more than NumLandmarks entries.
type wireHand struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"`
	Score      float64   `json:"score"`
}

func (h wireHand) toHandLandmarks() HandLandmarks {
	lm := HandLandmarks{Handedness: h.Handedness, Score: h.Score}
	copy(lm.Points[:], h.Points)
	return lm
}

// roundTrip sends one JPEG frame and decodes the reply line.
func (s *service) roundTrip(jpeg []byte) ([]HandLandmarks, error) {
	msg := make([]byte, 4, 4+len(jpeg))
	binary.BigEndian.PutUint32(msg, uint32(len(jpeg)))
	msg = append(msg, jpeg...)
	if _, err := s.in.Write(msg); err != nil {
		return nil, fmt.Errorf("send frame: %w", err)
	}

	line, err := s.out.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read landmarks: %w", err)
	}

	var reply struct {
		Hands []wireHand `json:"hands"`
	}
	if err := json.Unmarshal(line, &reply); err != nil {
		return nil, fmt.Errorf("decode landmarks: %w", err)
	}

	hands := make([]HandLandmarks, len(reply.Hands))
	for i, h := range reply.Hands {
		hands[i] = h.toHandLandmarks()
	}
	return hands, nil
}

// stop closes stdin, which ends the service, and waits for it. A service
// built without a process (in tests) only closes its pipe.
func (s *service) stop() error {
	err := s.in.Close()
	if s.cmd != nil {
		if werr := s.cmd.Wait(); werr != nil {
			err = werr
		}
	}
	return err
}

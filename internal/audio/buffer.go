package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/faiface/beep"

	fserrors "github.com/jscyril/freesound_cli/pkg/errors"
)

// LoadBuffer decodes an entire audio file into an in-memory sample
// buffer. Holding the whole buffer is what makes digit-seek cheap: a new
// streamer over the same samples can start from any frame.
func LoadBuffer(path string) (*beep.Buffer, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %v", fserrors.ErrDecodeFailed, err)
	}

	streamer, format, err := Decode(f, path)
	if err != nil {
		f.Close()
		if !errors.Is(err, fserrors.ErrDecodeFailed) {
			err = fmt.Errorf("%w: %v", fserrors.ErrDecodeFailed, err)
		}
		return nil, beep.Format{}, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	streamer.Close()

	if buffer.Len() == 0 {
		return nil, format, fserrors.ErrDecodeFailed
	}
	return buffer, format, nil
}

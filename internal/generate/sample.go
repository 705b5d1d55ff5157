package generate

import "io"

// WriteSample prints the annotated sample input configuration. The sample
// is a valid user configuration: merged with the defaults and the fabric
// login it passes validation unchanged.
func WriteSample(w io.Writer) error {
	data, err := templatesFS.ReadFile("templates/provision-config.yaml")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

package upd72020x

import "github.com/golang/glog"

// statusUnreadable stands in for the status when the last poll read failed.
const statusUnreadable = 0xFFFFFFFF

// awaitResult polls the result code of ctrl until it reports success.
// Reads fail now and then while the controller is busy writing, so a failed
// read only costs one iteration.
func awaitResult(cs *ConfigSpace, p poller, ctrl controlRegister) error {
	var status uint32
	for i := 0; i < p.iterations; i++ {
		p.sleep(p.interval)
		v, err := cs.Read32(ctrl.offset)
		if err != nil {
			status = statusUnreadable
			continue
		}
		status = v
		if Result(status&resultMask) == ResultSuccess {
			glog.V(1).Infof("%s: result success after %d polls", ctrl, i+1)
			return nil
		}
	}
	return &UploadFailedError{Register: ctrl.name, Status: status}
}

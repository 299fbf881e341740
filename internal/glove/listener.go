package glove

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"glove_go/pkg/logger"
)

// Tamanho máximo de um datagrama OSC das luvas
const maxDatagramSize = 2048

// Listener possui os sockets UDP que recebem a telemetria das luvas.
//
// Um socket por porta configurada. As portas são obrigatórias: se qualquer
// bind falhar, Start fecha os sockets já abertos e retorna erro — operar com
// escuta parcial esconderia a falha do operador. Datagramas malformados são
// contados e descartados sem interromper a escuta.
type Listener struct {
	host    string
	ports   []int
	store   *Store
	decoder *Decoder
	debug   bool

	mu      sync.Mutex
	conns   []*net.UDPConn
	wg      sync.WaitGroup
	running bool
}

// NewListener cria um Listener parado
func NewListener(host string, ports []int, store *Store, debug bool) *Listener {
	return &Listener{
		host:    host,
		ports:   ports,
		store:   store,
		decoder: NewDecoder(),
		debug:   debug,
	}
}

// Start abre um socket UDP por porta e inicia as goroutines de leitura.
// Tudo-ou-nada: qualquer falha de bind fecha os sockets já abertos.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return errors.New("listener já em execução")
	}
	if len(l.ports) == 0 {
		return errors.New("nenhuma porta configurada")
	}

	conns := make([]*net.UDPConn, 0, len(l.ports))
	for _, port := range l.ports {
		addr := &net.UDPAddr{IP: net.ParseIP(l.host), Port: port}
		conn, err := net.ListenUDP("udp", addr)
		if err != nil {
			for _, c := range conns {
				c.Close()
			}
			return fmt.Errorf("falha ao abrir porta UDP %d: %w", port, err)
		}
		conns = append(conns, conn)
		logger.Infof("Escutando telemetria das luvas em %s", conn.LocalAddr())
	}

	l.conns = conns
	l.running = true

	for _, conn := range conns {
		l.wg.Add(1)
		go l.readLoop(conn)
	}

	return nil
}

// Stop fecha todos os sockets e espera as goroutines de leitura terminarem
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	conns := l.conns
	l.conns = nil
	l.running = false
	l.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
	l.wg.Wait()

	logger.Info("Escuta de telemetria encerrada")
}

// IsRunning indica se a escuta está ativa
func (l *Listener) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// LocalAddrs retorna os endereços efetivos dos sockets abertos
func (l *Listener) LocalAddrs() []net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()

	addrs := make([]net.Addr, 0, len(l.conns))
	for _, conn := range l.conns {
		addrs = append(addrs, conn.LocalAddr())
	}
	return addrs
}

// readLoop lê datagramas de um socket até ele ser fechado
func (l *Listener) readLoop(conn *net.UDPConn) {
	defer l.wg.Done()

	buf := make([]byte, maxDatagramSize)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			// Socket fechado pelo Stop: fim normal do loop
			return
		}

		l.handleDatagram(buf[:n])
	}
}

// handleDatagram descodifica um datagrama e atualiza o estado.
// Erros de descodificação são contados e descartados.
func (l *Listener) handleDatagram(datagram []byte) {
	result, err := l.decoder.Decode(datagram)
	if err != nil {
		l.store.RecordDecodeError()
		if l.debug {
			logger.Debugf("Datagrama descartado: %v", err)
		}
		return
	}

	switch {
	case result.Sample != nil:
		l.store.Update(*result.Sample)
	case result.Device != nil:
		l.store.SetDevice(result.Device.Hand, result.Device.Name)
		logger.Infof("Dispositivo anunciado (%s): %s",
			result.Device.Hand, result.Device.Name)
	}
}

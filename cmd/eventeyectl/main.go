package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte, headers map[string]string) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	var (
		baseURL = envOr("EVENTEYE_URL", "http://localhost:8080")
		out     = envOr("EVENTEYE_OUT", "text")
		timeout = 5 * time.Minute // los envíos individuales throttlean entre mails
	)

	root := &cobra.Command{
		Use:   "eventeyectl",
		Short: "CLI para EventEye (eventos y envío de certificados)",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del API (env EVENTEYE_URL)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, OutFormat: out, HTTP: &http.Client{Timeout: timeout}}

	// grupo events
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Operaciones sobre eventos",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar eventos",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/v1/events", nil, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("list fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <eventID>",
		Short: "Mostrar un evento",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/v1/events/"+args[0], nil, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("get fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <eventID>",
		Short: "Eliminar un evento",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("DELETE", "/v1/events/"+args[0], nil, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("delete fallo: status=%d body=%s", status, string(body))
			}
			if cl.OutFormat == "text" {
				fmt.Println("ok")
				return nil
			}
			cl.print(status, body)
			return nil
		},
	}

	// events create: parsea el CSV en el server y crea el evento
	var crCSV, crName, crDate, crOrganizer, crTitle, crOrg string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Crear un evento desde un CSV de participantes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if crCSV == "" {
				return fmt.Errorf("--csv es requerido")
			}
			if crName == "" || crDate == "" || crOrganizer == "" {
				return fmt.Errorf("--name, --date y --organizer son requeridos")
			}

			raw, err := os.ReadFile(crCSV)
			if err != nil {
				return err
			}
			status, body, err := cl.do("POST", "/v1/parse", raw, map[string]string{"Content-Type": "text/csv"})
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("parse fallo: status=%d body=%s", status, string(body))
			}

			var parsed struct {
				Rows []json.RawMessage `json:"rows"`
			}
			if err := json.Unmarshal(body, &parsed); err != nil {
				return fmt.Errorf("respuesta de parse inválida: %w", err)
			}

			payload := map[string]any{
				"eventName":     crName,
				"eventDate":     crDate,
				"organizerName": crOrganizer,
				"participants":  parsed.Rows,
			}
			if crTitle != "" {
				payload["organizerTitle"] = crTitle
			}
			if crOrg != "" {
				payload["organizerOrganization"] = crOrg
			}
			b, _ := json.Marshal(payload)

			status, body, err = cl.do("POST", "/v1/events", b, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("create fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	createCmd.Flags().StringVar(&crCSV, "csv", "", "Ruta al CSV de participantes (columnas name y email)")
	createCmd.Flags().StringVar(&crName, "name", "", "Nombre del evento")
	createCmd.Flags().StringVar(&crDate, "date", "", "Fecha del evento (YYYY-MM-DD)")
	createCmd.Flags().StringVar(&crOrganizer, "organizer", "", "Nombre del organizador")
	createCmd.Flags().StringVar(&crTitle, "organizer-title", "", "Cargo del organizador (opcional)")
	createCmd.Flags().StringVar(&crOrg, "organization", "", "Organización (opcional)")

	generateCmd := &cobra.Command{
		Use:   "generate <eventID>",
		Short: "Generar certificados para todos los participantes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("POST", "/v1/events/"+args[0]+"/certificates", nil, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("generate fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	sendCmd := &cobra.Command{
		Use:   "send <eventID>",
		Short: "Enviar certificados individualmente a cada participante",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("POST", "/v1/events/"+args[0]+"/send", nil, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("send fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	var ownerEmail string
	sendOwnerCmd := &cobra.Command{
		Use:   "send-to-owner <eventID>",
		Short: "Enviar todos los certificados en un solo mail al organizador",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("se requiere exactamente un eventID")
			}
			if ownerEmail == "" {
				return fmt.Errorf("--email es requerido")
			}
			b, _ := json.Marshal(map[string]string{"ownerEmail": ownerEmail})
			status, body, err := cl.do("POST", "/v1/events/"+args[0]+"/send-to-owner", b, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("send-to-owner fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	sendOwnerCmd.Flags().StringVar(&ownerEmail, "email", "", "Email del organizador")

	// certificate: descarga el SVG de un participante
	var certOut string
	certCmd := &cobra.Command{
		Use:   "certificate <eventID> <participantID>",
		Short: "Descargar el certificado SVG de un participante",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/v1/events/" + args[0] + "/participants/" + args[1] + "/certificate"
			status, body, err := cl.do("GET", path, nil, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("certificate fallo: status=%d body=%s", status, string(body))
			}
			if certOut != "" {
				if err := os.WriteFile(certOut, body, 0o644); err != nil {
					return err
				}
				fmt.Printf("escrito %s (%d bytes)\n", certOut, len(body))
				return nil
			}
			fmt.Println(string(body))
			return nil
		},
	}
	certCmd.Flags().StringVar(&certOut, "o", "", "Archivo de salida (default: stdout)")

	eventsCmd.AddCommand(listCmd, getCmd, deleteCmd, createCmd)
	root.AddCommand(eventsCmd, generateCmd, sendCmd, sendOwnerCmd, certCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	clabv1alpha1 "github.com/labfabric/topoviz/api/v1alpha1"
	"github.com/labfabric/topoviz/internal/source"
	"github.com/labfabric/topoviz/internal/topology"
	"github.com/labfabric/topoviz/internal/visualize"
)

var (
	scheme = runtime.NewScheme()
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(clabv1alpha1.AddToScheme(scheme))
}

func main() {
	var kubeconfig string
	if home := homedir.HomeDir(); home != "" {
		kubeconfig = filepath.Join(home, ".kube", "config")
	} else {
		kubeconfig = os.Getenv("KUBECONFIG")
	}
	flag.StringVar(&kubeconfig, "kubeconfig", kubeconfig, "absolute path to the kubeconfig file")

	var namespace string
	var name string
	var output string
	var timeout time.Duration

	flag.StringVar(&namespace, "namespace", "default", "Namespace of the topology")
	flag.StringVar(&name, "name", "", "Topology name")
	flag.StringVar(&output, "output", "json", "Output format: json or yaml")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for fetching topology resources")

	opts := zap.Options{}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts), zap.WriteTo(os.Stderr)))
	logger := ctrl.Log.WithName("topoviz")

	if name == "" {
		logger.Error(nil, "--name is required")
		os.Exit(2)
	}

	format, err := topology.ParseFormat(output)
	if err != nil {
		logger.Error(err, "invalid --output")
		os.Exit(2)
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		logger.Error(err, "unable to build kubeconfig")
		os.Exit(1)
	}

	k8sClient, err := client.New(config, client.Options{Scheme: scheme})
	if err != nil {
		logger.Error(err, "unable to create client")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(log.IntoContext(context.Background(), logger), timeout)
	defer cancel()

	g, err := visualize.New(source.NewKubeSource(k8sClient)).Visualize(ctx, namespace, name)
	if err != nil {
		logger.Error(err, "unable to visualize topology", "namespace", namespace, "topology", name)
		os.Exit(1)
	}

	if err := topology.Write(os.Stdout, g, format); err != nil {
		logger.Error(err, "unable to write topology")
		os.Exit(1)
	}
	if format == topology.FormatJSON {
		_, _ = os.Stdout.WriteString("\n")
	}
}

package web

// htmlContent is the embedded host page. It opens a websocket session,
// forwards pointer input as control messages and paints the PNG frames
// the server streams back. The model source comes from the ?src= query
// parameter.
const htmlContent = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>partview</title>
<style>
  html, body { margin: 0; height: 100%; overflow: hidden; background: #0f1219; }
  #view { display: block; width: 100vw; height: 100vh; cursor: grab; }
  #view.dragging { cursor: grabbing; }
  #status {
    position: absolute; top: 8px; right: 8px; padding: 4px 8px;
    color: #c8c8c8; background: rgba(15, 18, 25, 0.7);
    font: 12px monospace;
  }
</style>
</head>
<body>
<canvas id="view"></canvas>
<div id="status">connecting</div>
<script>
const canvas = document.getElementById('view');
const ctx = canvas.getContext('2d');
const status = document.getElementById('status');

const scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
const ws = new WebSocket(scheme + location.host + '/ws');
ws.binaryType = 'arraybuffer';

function send(msg) {
    if (ws.readyState === WebSocket.OPEN) {
        ws.send(JSON.stringify(msg));
    }
}

function surfaceSize() {
    return {
        width: Math.max(1, Math.floor(window.innerWidth)),
        height: Math.max(1, Math.floor(window.innerHeight))
    };
}

ws.onopen = () => {
    const size = surfaceSize();
    canvas.width = size.width;
    canvas.height = size.height;
    send({type: 'hello', width: size.width, height: size.height});
    status.textContent = 'idle';

    const src = new URLSearchParams(location.search).get('src');
    if (src) {
        send({type: 'load', src: src});
    }
};

ws.onclose = () => { status.textContent = 'disconnected'; };

ws.onmessage = async (ev) => {
    if (typeof ev.data === 'string') {
        const st = JSON.parse(ev.data);
        if (st.type !== 'state') {
            return;
        }
        if (st.phase === 'error') {
            status.textContent = 'error: ' + (st.error || st.message);
        } else if (st.phase === 'loaded' && st.triangles) {
            status.textContent = 'loaded, ' + st.triangles + ' triangles';
        } else {
            status.textContent = st.phase;
        }
        return;
    }
    const bitmap = await createImageBitmap(new Blob([ev.data], {type: 'image/png'}));
    ctx.drawImage(bitmap, 0, 0);
    bitmap.close();
};

let dragging = false;
let lastX = 0;
let lastY = 0;

canvas.addEventListener('mousedown', (e) => {
    dragging = true;
    lastX = e.clientX;
    lastY = e.clientY;
    canvas.classList.add('dragging');
});
window.addEventListener('mouseup', () => {
    dragging = false;
    canvas.classList.remove('dragging');
});
window.addEventListener('mousemove', (e) => {
    if (!dragging) {
        return;
    }
    send({type: 'orbit', dx: (e.clientX - lastX) * 0.01, dy: -(e.clientY - lastY) * 0.01});
    lastX = e.clientX;
    lastY = e.clientY;
});
canvas.addEventListener('wheel', (e) => {
    e.preventDefault();
    send({type: 'zoom', delta: e.deltaY * 0.001});
}, {passive: false});
canvas.addEventListener('dblclick', () => send({type: 'reset'}));

let resizeTimer = null;
window.addEventListener('resize', () => {
    clearTimeout(resizeTimer);
    resizeTimer = setTimeout(() => {
        const size = surfaceSize();
        if (size.width === canvas.width && size.height === canvas.height) {
            return;
        }
        canvas.width = size.width;
        canvas.height = size.height;
        send({type: 'resize', width: size.width, height: size.height});
    }, 100);
});
</script>
</body>
</html>
`
